package domain

// TaskCategory classifies field activities within a workspace and gates their visibility.
type TaskCategory struct {
	CategoryID   string
	WorkspaceID  string
	Name         string
	Title        string
	Description  *string
	Color        *string
	Icon         *string
	RequiredRole Role
	IsActive     bool
	CreatedBy    string
	Timestamps
}

// VisibleTo reports whether a user holding role may see activities in this category.
func (c TaskCategory) VisibleTo(role Role) bool {
	return role.AtLeast(c.RequiredRole)
}

// CategoryRef is the short form of a category embedded in activities.
type CategoryRef struct {
	CategoryID   string
	Name         string
	Title        string
	Color        *string
	Icon         *string
	RequiredRole Role
}

// TaskCategoryUpdate carries a partial category update.
type TaskCategoryUpdate struct {
	Name         *string
	Title        *string
	Description  *string
	Color        *string
	Icon         *string
	RequiredRole *Role
	IsActive     *bool
}
