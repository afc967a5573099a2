package handler

import "finance-tracker/internal/query"

// Per-collection query configuration: which fields the list/detail
// endpoints may filter, search, project and join.

var categorySpec = query.Spec{
	Selectable: map[string]string{
		"id":          "id",
		"name":        "name",
		"description": "description",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	},
	Searchable: []string{"name", "description"},
	Filterable: map[string]query.FilterKind{
		"name": query.FilterExact,
	},
}

var expenseSpec = query.Spec{
	Selectable: map[string]string{
		"id":         "id",
		"ownerId":    "owner_id",
		"categoryId": "category_id",
		"amount":     "amount",
		"purpose":    "purpose",
		"date":       "date",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
	},
	Searchable: []string{"purpose"},
	Filterable: map[string]query.FilterKind{
		"categoryId": query.FilterID,
		"amount":     query.FilterExact,
	},
	Relations: []query.Relation{
		{Field: "category", Assoc: "Category", FKCol: "category_id"},
		{Field: "owner", Assoc: "Owner", FKCol: "owner_id"},
	},
}

var limitSpec = query.Spec{
	Selectable: map[string]string{
		"id":         "id",
		"ownerId":    "owner_id",
		"categoryId": "category_id",
		"amount":     "amount",
		"period":     "period",
		"status":     "status",
		"startDate":  "start_date",
		"endDate":    "end_date",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
	},
	Filterable: map[string]query.FilterKind{
		"categoryId": query.FilterID,
		"period":     query.FilterExact,
		"status":     query.FilterExact,
	},
	Relations: []query.Relation{
		{Field: "category", Assoc: "Category", FKCol: "category_id"},
		{Field: "owner", Assoc: "Owner", FKCol: "owner_id"},
	},
}
