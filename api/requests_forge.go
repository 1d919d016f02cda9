package api

// ---------------------------------------------------------------------------
// Shared requests
// ---------------------------------------------------------------------------

// ListForgeRequest binds the pagination query parameters shared by every
// list route.
type ListForgeRequest struct {
	Skip      string `description:"Records to skip (default 0)"                 query:"skip"`
	Limit     string `description:"Page size (default 10)"                      query:"limit"`
	Search    string `description:"Case-insensitive match on name/description" query:"search"`
	SortBy    string `description:"Sort field (default createdAt)"             query:"sortBy"`
	SortOrder string `description:"asc or desc (default desc)"                 query:"sortOrder"`
}

// IDForgeRequest binds the record id path parameter.
type IDForgeRequest struct {
	ID string `description:"Record identifier" path:"id"`
}

// ReportForgeRequest binds nothing; report routes take no input.
type ReportForgeRequest struct{}

// ---------------------------------------------------------------------------
// Category requests
// ---------------------------------------------------------------------------

// CreateCategoryForgeRequest binds the body for POST /categories.
type CreateCategoryForgeRequest struct {
	Name        string `description:"Unique name, 2-100 characters"  json:"name"`
	Description string `description:"Up to 500 characters"           json:"description,omitempty"`
}

// UpdateCategoryForgeRequest binds the path and body for PUT /categories/:id.
type UpdateCategoryForgeRequest struct {
	ID          string  `description:"Category identifier"            path:"id"`
	Name        *string `description:"Unique name, 2-100 characters"  json:"name,omitempty"`
	Description *string `description:"Up to 500 characters"           json:"description,omitempty"`
}

// ---------------------------------------------------------------------------
// Subcategory requests
// ---------------------------------------------------------------------------

// CreateSubCategoryForgeRequest binds the body for POST /subcategories.
type CreateSubCategoryForgeRequest struct {
	Name        string `description:"Name, 2-100 characters"  json:"name"`
	Description string `description:"Up to 500 characters"    json:"description,omitempty"`
	CategoryID  string `description:"Parent category id"      json:"categoryId"`
}

// UpdateSubCategoryForgeRequest binds the path and body for PUT /subcategories/:id.
type UpdateSubCategoryForgeRequest struct {
	ID          string  `description:"Subcategory identifier"  path:"id"`
	Name        *string `description:"Name, 2-100 characters"  json:"name,omitempty"`
	Description *string `description:"Up to 500 characters"    json:"description,omitempty"`
	CategoryID  *string `description:"New parent category id"  json:"categoryId,omitempty"`
}

// ByCategoryForgeRequest binds the category path parameter.
type ByCategoryForgeRequest struct {
	CategoryID string `description:"Category identifier" path:"categoryId"`
}

// BySubCategoryForgeRequest binds the subcategory path parameter.
type BySubCategoryForgeRequest struct {
	SubCategoryID string `description:"Subcategory identifier" path:"subCategoryId"`
}

// ---------------------------------------------------------------------------
// Course requests
// ---------------------------------------------------------------------------

// CreateCourseForgeRequest binds the body for POST /courses.
type CreateCourseForgeRequest struct {
	Name           string   `description:"Unique name, 2-100 characters"        json:"name"`
	Description    string   `description:"Up to 500 characters"                 json:"description,omitempty"`
	Duration       float64  `description:"Duration in hours, greater than zero" json:"duration"`
	Level          string   `description:"beginner, intermediate or advanced"   json:"level"`
	CategoryIDs    []string `description:"Category ids (at least one)"         json:"categoryIds"`
	SubCategoryIDs []string `description:"Subcategory ids (at least one)"      json:"subCategoryIds"`
}

// UpdateCourseForgeRequest binds the path and body for PUT /courses/:id.
type UpdateCourseForgeRequest struct {
	ID             string   `description:"Course identifier"                    path:"id"`
	Name           *string  `description:"Unique name, 2-100 characters"        json:"name,omitempty"`
	Description    *string  `description:"Up to 500 characters"                 json:"description,omitempty"`
	Duration       *float64 `description:"Duration in hours, greater than zero" json:"duration,omitempty"`
	Level          *string  `description:"beginner, intermediate or advanced"   json:"level,omitempty"`
	CategoryIDs    []string `description:"Replacement category ids"             json:"categoryIds,omitempty"`
	SubCategoryIDs []string `description:"Replacement subcategory ids"          json:"subCategoryIds,omitempty"`
}
