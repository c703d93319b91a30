package repository

import (
	"fmt"
	"strings"

	"estateportal/internal/model"
)

const propertyColumns = `
	id, title, description, price, property_type, bedrooms, bathrooms,
	area_sqm, location, address, features, status, images, created_by,
	created_at, updated_at`

var sortClauses = map[model.SortKey]string{
	model.SortNewest:    "created_at DESC",
	model.SortOldest:    "created_at ASC",
	model.SortPriceLow:  "price ASC, created_at DESC",
	model.SortPriceHigh: "price DESC, created_at DESC",
}

// listingSQL holds the count and page statements for one listing query
type listingSQL struct {
	count     string
	countArgs []interface{}
	page      string
	pageArgs  []interface{}
}

// buildListingQuery translates a listing query into parameterised SQL
func buildListingQuery(q model.ListingQuery) listingSQL {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if q.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(q.Status))
		argIndex++
	}
	if term := strings.TrimSpace(q.Term); term != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(title ILIKE $%d OR location ILIKE $%d OR description ILIKE $%d)",
			argIndex, argIndex, argIndex,
		))
		args = append(args, "%"+escapeLike(term)+"%")
		argIndex++
	}
	if q.Category != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("property_type = $%d", argIndex))
		args = append(args, string(*q.Category))
		argIndex++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	order, ok := sortClauses[q.Sort]
	if !ok {
		order = sortClauses[model.SortNewest]
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 9
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	countArgs := append([]interface{}{}, args...)
	pageArgs := append(args, limit, offset)

	return listingSQL{
		count:     fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", whereClause),
		countArgs: countArgs,
		page: fmt.Sprintf(
			"SELECT %s\n\tFROM properties\n\tWHERE %s\n\tORDER BY %s, id\n\tLIMIT $%d OFFSET $%d",
			propertyColumns, whereClause, order, argIndex, argIndex+1,
		),
		pageArgs: pageArgs,
	}
}

// escapeLike escapes ILIKE wildcards so the term is matched literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
