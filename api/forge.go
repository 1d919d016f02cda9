package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/subcategory"
)

// ForgeAPI wires all Forge-style HTTP handlers together.
type ForgeAPI struct {
	categories    *category.Service
	subCategories *subcategory.Service
	courses       *course.Service
	reports       *report.Engine
	log           forge.Logger
}

// NewForgeAPI creates a ForgeAPI from Syllabus services.
func NewForgeAPI(
	cats *category.Service,
	subs *subcategory.Service,
	courses *course.Service,
	reports *report.Engine,
	log forge.Logger,
) *ForgeAPI {
	return &ForgeAPI{
		categories:    cats,
		subCategories: subs,
		courses:       courses,
		reports:       reports,
		log:           log,
	}
}

// RegisterRoutes registers all Syllabus API routes into the given Forge router
// with full OpenAPI metadata.
func (a *ForgeAPI) RegisterRoutes(router forge.Router) {
	a.registerCategoryRoutes(router)
	a.registerSubCategoryRoutes(router)
	a.registerCourseRoutes(router)
	a.registerReportRoutes(router)
}

// ---------------------------------------------------------------------------
// Category routes
// ---------------------------------------------------------------------------

func (a *ForgeAPI) registerCategoryRoutes(router forge.Router) {
	g := router.Group("", forge.WithGroupTags("categories"))

	if err := g.POST("/categories", a.createCategory,
		forge.WithSummary("Create category"),
		forge.WithDescription("Creates a category. Names are unique among active categories."),
		forge.WithOperationID("createCategory"),
		forge.WithRequestSchema(CreateCategoryForgeRequest{}),
		forge.WithCreatedResponse(category.Category{}),
		forge.WithErrorResponses(),
	); err != nil {
		// Keep registering the remaining routes; the failure surfaces in logs.
		a.log.Error("Failed to register createCategory route", forge.Error(err))
	}

	if err := g.GET("/categories", a.listCategories,
		forge.WithSummary("List categories"),
		forge.WithDescription("Returns a page of active categories."),
		forge.WithOperationID("listCategories"),
		forge.WithRequestSchema(ListForgeRequest{}),
		forge.WithListResponse(category.Category{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register listCategories route", forge.Error(err))
	}

	if err := g.GET("/categories/with-subcategory-count", a.categoriesWithSubCategoryCount,
		forge.WithSummary("List categories with subcategory count"),
		forge.WithDescription("Returns active categories, newest first, each with its number of active subcategories."),
		forge.WithOperationID("categoriesWithSubCategoryCount"),
		forge.WithListResponse(report.CategorySubCategoryCount{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register categoriesWithSubCategoryCount route", forge.Error(err))
	}

	if err := g.GET("/categories/:id", a.getCategory,
		forge.WithSummary("Get category"),
		forge.WithDescription("Returns an active category."),
		forge.WithOperationID("getCategory"),
		forge.WithResponseSchema(http.StatusOK, "Category details", category.Category{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register getCategory route", forge.Error(err))
	}

	if err := g.PUT("/categories/:id", a.updateCategory,
		forge.WithSummary("Update category"),
		forge.WithDescription("Applies a partial update to an active category."),
		forge.WithOperationID("updateCategory"),
		forge.WithRequestSchema(UpdateCategoryForgeRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated category", category.Category{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register updateCategory route", forge.Error(err))
	}

	if err := g.DELETE("/categories/:id", a.removeCategory,
		forge.WithSummary("Delete category"),
		forge.WithDescription("Soft-deletes a category. Its name becomes free for reuse."),
		forge.WithOperationID("removeCategory"),
		forge.WithResponseSchema(http.StatusOK, "Deleted category", category.Category{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register removeCategory route", forge.Error(err))
	}
}

func (a *ForgeAPI) createCategory(ctx forge.Context, req *CreateCategoryForgeRequest) (*Response, error) {
	c, err := a.categories.Create(ctx.Context(), category.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return nil, created(ctx, "Category created successfully", c)
}

func (a *ForgeAPI) listCategories(ctx forge.Context, req *ListForgeRequest) (*Response, error) {
	params, err := req.params()
	if err != nil {
		return nil, err
	}

	page, err := a.categories.List(ctx.Context(), params)
	if err != nil {
		return nil, mapError(err)
	}

	return ok("Categories retrieved successfully", page), nil
}

func (a *ForgeAPI) categoriesWithSubCategoryCount(ctx forge.Context, _ *ReportForgeRequest) (*Response, error) {
	rows, err := a.categories.WithSubCategoryCount(ctx.Context())
	if err != nil {
		return nil, mapError(err)
	}

	return ok("Categories with subcategory count retrieved successfully", rows), nil
}

func (a *ForgeAPI) getCategory(ctx forge.Context, req *IDForgeRequest) (*Response, error) {
	catID, err := parseForgeID(req.ID, id.PrefixCategory, "category")
	if err != nil {
		return nil, err
	}

	c, getErr := a.categories.Get(ctx.Context(), catID)
	if getErr != nil {
		return nil, mapError(getErr)
	}

	return ok("Category retrieved successfully", c), nil
}

func (a *ForgeAPI) updateCategory(ctx forge.Context, req *UpdateCategoryForgeRequest) (*Response, error) {
	catID, err := parseForgeID(req.ID, id.PrefixCategory, "category")
	if err != nil {
		return nil, err
	}

	c, updateErr := a.categories.Update(ctx.Context(), catID, category.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if updateErr != nil {
		return nil, mapError(updateErr)
	}

	return ok("Category updated successfully", c), nil
}

func (a *ForgeAPI) removeCategory(ctx forge.Context, req *IDForgeRequest) (*Response, error) {
	catID, err := parseForgeID(req.ID, id.PrefixCategory, "category")
	if err != nil {
		return nil, err
	}

	c, removeErr := a.categories.Remove(ctx.Context(), catID)
	if removeErr != nil {
		return nil, mapError(removeErr)
	}

	return ok("Category deleted successfully", c), nil
}

// ---------------------------------------------------------------------------
// Subcategory routes
// ---------------------------------------------------------------------------

func (a *ForgeAPI) registerSubCategoryRoutes(router forge.Router) {
	g := router.Group("", forge.WithGroupTags("subcategories"))

	if err := g.POST("/subcategories", a.createSubCategory,
		forge.WithSummary("Create subcategory"),
		forge.WithDescription("Creates a subcategory under an active category."),
		forge.WithOperationID("createSubCategory"),
		forge.WithRequestSchema(CreateSubCategoryForgeRequest{}),
		forge.WithCreatedResponse(subcategory.SubCategory{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register createSubCategory route", forge.Error(err))
	}

	if err := g.GET("/subcategories", a.listSubCategories,
		forge.WithSummary("List subcategories"),
		forge.WithDescription("Returns a page of active subcategories with their parent category."),
		forge.WithOperationID("listSubCategories"),
		forge.WithRequestSchema(ListForgeRequest{}),
		forge.WithListResponse(subcategory.Detail{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register listSubCategories route", forge.Error(err))
	}

	if err := g.GET("/subcategories/by-category/:categoryId", a.subCategoriesByCategory,
		forge.WithSummary("List subcategories of a category"),
		forge.WithDescription("Returns every active subcategory whose parent is the given category."),
		forge.WithOperationID("subCategoriesByCategory"),
		forge.WithListResponse(subcategory.SubCategory{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register subCategoriesByCategory route", forge.Error(err))
	}

	if err := g.GET("/subcategories/:id", a.getSubCategory,
		forge.WithSummary("Get subcategory"),
		forge.WithDescription("Returns an active subcategory with its parent category."),
		forge.WithOperationID("getSubCategory"),
		forge.WithResponseSchema(http.StatusOK, "Subcategory details", subcategory.Detail{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register getSubCategory route", forge.Error(err))
	}

	if err := g.PUT("/subcategories/:id", a.updateSubCategory,
		forge.WithSummary("Update subcategory"),
		forge.WithDescription("Applies a partial update. A new parent must be an active category."),
		forge.WithOperationID("updateSubCategory"),
		forge.WithRequestSchema(UpdateSubCategoryForgeRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated subcategory", subcategory.SubCategory{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register updateSubCategory route", forge.Error(err))
	}

	if err := g.DELETE("/subcategories/:id", a.removeSubCategory,
		forge.WithSummary("Delete subcategory"),
		forge.WithDescription("Soft-deletes a subcategory."),
		forge.WithOperationID("removeSubCategory"),
		forge.WithResponseSchema(http.StatusOK, "Deleted subcategory", subcategory.SubCategory{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register removeSubCategory route", forge.Error(err))
	}
}

func (a *ForgeAPI) createSubCategory(ctx forge.Context, req *CreateSubCategoryForgeRequest) (*Response, error) {
	catID, err := parseForgeID(req.CategoryID, id.PrefixCategory, "category")
	if err != nil {
		return nil, err
	}

	sc, createErr := a.subCategories.Create(ctx.Context(), subcategory.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  catID,
	})
	if createErr != nil {
		return nil, mapError(createErr)
	}

	return nil, created(ctx, "SubCategory created successfully", sc)
}

func (a *ForgeAPI) listSubCategories(ctx forge.Context, req *ListForgeRequest) (*Response, error) {
	params, err := req.params()
	if err != nil {
		return nil, err
	}

	page, err := a.subCategories.List(ctx.Context(), params)
	if err != nil {
		return nil, mapError(err)
	}

	return ok("SubCategories retrieved successfully", page), nil
}

func (a *ForgeAPI) subCategoriesByCategory(ctx forge.Context, req *ByCategoryForgeRequest) (*Response, error) {
	catID, err := parseForgeID(req.CategoryID, id.PrefixCategory, "category")
	if err != nil {
		return nil, err
	}

	rows, findErr := a.subCategories.FindByCategory(ctx.Context(), catID)
	if findErr != nil {
		return nil, mapError(findErr)
	}

	return ok("SubCategories retrieved successfully", rows), nil
}

func (a *ForgeAPI) getSubCategory(ctx forge.Context, req *IDForgeRequest) (*Response, error) {
	scID, err := parseForgeID(req.ID, id.PrefixSubCategory, "subcategory")
	if err != nil {
		return nil, err
	}

	sc, getErr := a.subCategories.Get(ctx.Context(), scID)
	if getErr != nil {
		return nil, mapError(getErr)
	}

	return ok("SubCategory retrieved successfully", sc), nil
}

func (a *ForgeAPI) updateSubCategory(ctx forge.Context, req *UpdateSubCategoryForgeRequest) (*Response, error) {
	scID, err := parseForgeID(req.ID, id.PrefixSubCategory, "subcategory")
	if err != nil {
		return nil, err
	}

	in := subcategory.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.CategoryID != nil {
		catID, parseErr := parseForgeID(*req.CategoryID, id.PrefixCategory, "category")
		if parseErr != nil {
			return nil, parseErr
		}
		in.CategoryID = &catID
	}

	sc, updateErr := a.subCategories.Update(ctx.Context(), scID, in)
	if updateErr != nil {
		return nil, mapError(updateErr)
	}

	return ok("SubCategory updated successfully", sc), nil
}

func (a *ForgeAPI) removeSubCategory(ctx forge.Context, req *IDForgeRequest) (*Response, error) {
	scID, err := parseForgeID(req.ID, id.PrefixSubCategory, "subcategory")
	if err != nil {
		return nil, err
	}

	sc, removeErr := a.subCategories.Remove(ctx.Context(), scID)
	if removeErr != nil {
		return nil, mapError(removeErr)
	}

	return ok("SubCategory deleted successfully", sc), nil
}

// ---------------------------------------------------------------------------
// Course routes
// ---------------------------------------------------------------------------

func (a *ForgeAPI) registerCourseRoutes(router forge.Router) {
	g := router.Group("", forge.WithGroupTags("courses"))

	if err := g.POST("/courses", a.createCourse,
		forge.WithSummary("Create course"),
		forge.WithDescription("Creates a course. Every subcategory must belong to one of the given categories."),
		forge.WithOperationID("createCourse"),
		forge.WithRequestSchema(CreateCourseForgeRequest{}),
		forge.WithCreatedResponse(course.Course{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register createCourse route", forge.Error(err))
	}

	if err := g.GET("/courses", a.listCourses,
		forge.WithSummary("List courses"),
		forge.WithDescription("Returns a page of active courses with their categories and subcategories."),
		forge.WithOperationID("listCourses"),
		forge.WithRequestSchema(ListForgeRequest{}),
		forge.WithListResponse(course.Detail{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register listCourses route", forge.Error(err))
	}

	if err := g.GET("/courses/by-category/:categoryId", a.coursesByCategory,
		forge.WithSummary("List courses of a category"),
		forge.WithDescription("Returns every active course referencing the given category."),
		forge.WithOperationID("coursesByCategory"),
		forge.WithListResponse(course.Detail{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register coursesByCategory route", forge.Error(err))
	}

	if err := g.GET("/courses/by-subcategory/:subCategoryId", a.coursesBySubCategory,
		forge.WithSummary("List courses of a subcategory"),
		forge.WithDescription("Returns every active course referencing the given subcategory."),
		forge.WithOperationID("coursesBySubCategory"),
		forge.WithListResponse(course.Detail{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register coursesBySubCategory route", forge.Error(err))
	}

	if err := g.GET("/courses/:id", a.getCourse,
		forge.WithSummary("Get course"),
		forge.WithDescription("Returns an active course with its categories and subcategories."),
		forge.WithOperationID("getCourse"),
		forge.WithResponseSchema(http.StatusOK, "Course details", course.Detail{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register getCourse route", forge.Error(err))
	}

	if err := g.PUT("/courses/:id", a.updateCourse,
		forge.WithSummary("Update course"),
		forge.WithDescription("Applies a partial update. Reference lists are re-checked when either is given."),
		forge.WithOperationID("updateCourse"),
		forge.WithRequestSchema(UpdateCourseForgeRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated course", course.Course{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register updateCourse route", forge.Error(err))
	}

	if err := g.DELETE("/courses/:id", a.removeCourse,
		forge.WithSummary("Delete course"),
		forge.WithDescription("Soft-deletes a course."),
		forge.WithOperationID("removeCourse"),
		forge.WithResponseSchema(http.StatusOK, "Deleted course", course.Course{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register removeCourse route", forge.Error(err))
	}
}

func (a *ForgeAPI) createCourse(ctx forge.Context, req *CreateCourseForgeRequest) (*Response, error) {
	catIDs, err := parseRefs(req.CategoryIDs, id.PrefixCategory)
	if err != nil {
		return nil, forge.BadRequest("invalid category ID")
	}
	subIDs, err := parseRefs(req.SubCategoryIDs, id.PrefixSubCategory)
	if err != nil {
		return nil, forge.BadRequest("invalid subcategory ID")
	}

	c, err := a.courses.Create(ctx.Context(), course.CreateInput{
		Name:           req.Name,
		Description:    req.Description,
		Duration:       req.Duration,
		Level:          course.Level(req.Level),
		CategoryIDs:    catIDs,
		SubCategoryIDs: subIDs,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return nil, created(ctx, "Course created successfully", c)
}

func (a *ForgeAPI) listCourses(ctx forge.Context, req *ListForgeRequest) (*Response, error) {
	params, err := req.params()
	if err != nil {
		return nil, err
	}

	page, err := a.courses.List(ctx.Context(), params)
	if err != nil {
		return nil, mapError(err)
	}

	return ok("Courses retrieved successfully", page), nil
}

func (a *ForgeAPI) coursesByCategory(ctx forge.Context, req *ByCategoryForgeRequest) (*Response, error) {
	catID, err := parseForgeID(req.CategoryID, id.PrefixCategory, "category")
	if err != nil {
		return nil, err
	}

	rows, findErr := a.courses.FindByCategory(ctx.Context(), catID)
	if findErr != nil {
		return nil, mapError(findErr)
	}

	return ok("Courses retrieved successfully", rows), nil
}

func (a *ForgeAPI) coursesBySubCategory(ctx forge.Context, req *BySubCategoryForgeRequest) (*Response, error) {
	scID, err := parseForgeID(req.SubCategoryID, id.PrefixSubCategory, "subcategory")
	if err != nil {
		return nil, err
	}

	rows, findErr := a.courses.FindBySubCategory(ctx.Context(), scID)
	if findErr != nil {
		return nil, mapError(findErr)
	}

	return ok("Courses retrieved successfully", rows), nil
}

func (a *ForgeAPI) getCourse(ctx forge.Context, req *IDForgeRequest) (*Response, error) {
	courseID, err := parseForgeID(req.ID, id.PrefixCourse, "course")
	if err != nil {
		return nil, err
	}

	c, getErr := a.courses.Get(ctx.Context(), courseID)
	if getErr != nil {
		return nil, mapError(getErr)
	}

	return ok("Course retrieved successfully", c), nil
}

func (a *ForgeAPI) updateCourse(ctx forge.Context, req *UpdateCourseForgeRequest) (*Response, error) {
	courseID, err := parseForgeID(req.ID, id.PrefixCourse, "course")
	if err != nil {
		return nil, err
	}

	catIDs, err := parseRefs(req.CategoryIDs, id.PrefixCategory)
	if err != nil {
		return nil, forge.BadRequest("invalid category ID")
	}
	subIDs, err := parseRefs(req.SubCategoryIDs, id.PrefixSubCategory)
	if err != nil {
		return nil, forge.BadRequest("invalid subcategory ID")
	}

	in := course.UpdateInput{
		Name:           req.Name,
		Description:    req.Description,
		Duration:       req.Duration,
		CategoryIDs:    catIDs,
		SubCategoryIDs: subIDs,
	}
	if req.Level != nil {
		level := course.Level(*req.Level)
		in.Level = &level
	}

	c, err := a.courses.Update(ctx.Context(), courseID, in)
	if err != nil {
		return nil, mapError(err)
	}

	return ok("Course updated successfully", c), nil
}

func (a *ForgeAPI) removeCourse(ctx forge.Context, req *IDForgeRequest) (*Response, error) {
	courseID, err := parseForgeID(req.ID, id.PrefixCourse, "course")
	if err != nil {
		return nil, err
	}

	c, removeErr := a.courses.Remove(ctx.Context(), courseID)
	if removeErr != nil {
		return nil, mapError(removeErr)
	}

	return ok("Course deleted successfully", c), nil
}

// ---------------------------------------------------------------------------
// Report routes
// ---------------------------------------------------------------------------

func (a *ForgeAPI) registerReportRoutes(router forge.Router) {
	g := router.Group("", forge.WithGroupTags("reports"))

	if err := g.GET("/reports/subcategories-by-category", a.reportSubCategoriesByCategory,
		forge.WithSummary("Subcategories by category"),
		forge.WithDescription("Groups active subcategories under their parent category, ordered by category name."),
		forge.WithOperationID("reportSubCategoriesByCategory"),
		forge.WithListResponse(report.CategoryGroup{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register reportSubCategoriesByCategory route", forge.Error(err))
	}

	if err := g.GET("/reports/courses-by-level", a.reportCoursesByLevel,
		forge.WithSummary("Courses by level"),
		forge.WithDescription("Groups active courses by level with their average duration, largest group first."),
		forge.WithOperationID("reportCoursesByLevel"),
		forge.WithListResponse(report.LevelGroup{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register reportCoursesByLevel route", forge.Error(err))
	}

	if err := g.GET("/reports/statistics", a.reportStatistics,
		forge.WithSummary("Catalog statistics"),
		forge.WithDescription("Returns category and course totals with duration aggregates."),
		forge.WithOperationID("reportStatistics"),
		forge.WithResponseSchema(http.StatusOK, "Catalog statistics", report.Statistics{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register reportStatistics route", forge.Error(err))
	}

	if err := g.GET("/reports/course-details", a.reportCourseDetails,
		forge.WithSummary("Courses with details"),
		forge.WithDescription("Lists active courses with the number of categories and subcategories they reference."),
		forge.WithOperationID("reportCourseDetails"),
		forge.WithListResponse(report.CourseDetail{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register reportCourseDetails route", forge.Error(err))
	}
}

func (a *ForgeAPI) reportSubCategoriesByCategory(ctx forge.Context, _ *ReportForgeRequest) (*Response, error) {
	rows, err := a.reports.SubCategoriesByCategory(ctx.Context())
	if err != nil {
		return nil, mapError(err)
	}
	return ok("SubCategories grouped by category retrieved successfully", rows), nil
}

func (a *ForgeAPI) reportCoursesByLevel(ctx forge.Context, _ *ReportForgeRequest) (*Response, error) {
	rows, err := a.reports.CoursesByLevel(ctx.Context())
	if err != nil {
		return nil, mapError(err)
	}
	return ok("Courses grouped by level retrieved successfully", rows), nil
}

func (a *ForgeAPI) reportStatistics(ctx forge.Context, _ *ReportForgeRequest) (*Response, error) {
	st, err := a.reports.Statistics(ctx.Context())
	if err != nil {
		return nil, mapError(err)
	}
	return ok("Statistics retrieved successfully", st), nil
}

func (a *ForgeAPI) reportCourseDetails(ctx forge.Context, _ *ReportForgeRequest) (*Response, error) {
	rows, err := a.reports.CoursesWithDetails(ctx.Context())
	if err != nil {
		return nil, mapError(err)
	}
	return ok("Courses with details retrieved successfully", rows), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ok(message string, data any) *Response {
	return &Response{StatusCode: http.StatusOK, Message: message, Data: data}
}

// created writes a 201 envelope directly; the handler then returns nil.
func created(ctx forge.Context, message string, data any) error {
	err := ctx.JSON(http.StatusCreated, Response{
		StatusCode: http.StatusCreated,
		Message:    message,
		Data:       data,
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func parseForgeID(raw string, prefix id.Prefix, kind string) (id.ID, error) {
	v, err := id.ParseWithPrefix(raw, prefix)
	if err != nil {
		return id.Nil, forge.BadRequest("invalid " + kind + " ID")
	}
	return v, nil
}

func (r *ListForgeRequest) params() (query.Params, error) {
	p, bad := pageParams(r.Skip, r.Limit, r.Search, r.SortBy, r.SortOrder)
	if bad != nil {
		return query.Params{}, forge.BadRequest("invalid pagination parameters")
	}
	return p, nil
}
