package models

// TaskCategory is a row of the task_categories table.
type TaskCategory struct {
	CategoryID   string  `db:"category_id"`
	WorkspaceID  string  `db:"workspace_id"`
	Name         string  `db:"name"`
	Title        string  `db:"title"`
	Description  *string `db:"description"`
	Color        *string `db:"color"`
	Icon         *string `db:"icon"`
	RequiredRole string  `db:"required_role"`
	IsActive     bool    `db:"is_active"`
	CreatedBy    string  `db:"created_by"`
	Timestamps
}
