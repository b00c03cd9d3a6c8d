package pgsql

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/flowhive/flowhive_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryWithTx {
	return &PgxWorkspaceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryWithTx
var _ portsrepo.WorkspaceRepositoryWithTx = (*PgxWorkspaceRepository)(nil)

const workspaceSelectQuery = `
SELECT
	w.workspace_id, w.name, w.description, w.owner_id, w.workspace_type, w.icon, w.color,
	w.created_at, w.updated_at
FROM workspaces w
`

func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	rows, err := r.Pool.Query(ctx, workspaceSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	ms, err := collect[models.Workspace](rows, "failed to collect workspace rows")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainWorkspaceSlice(ms), nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	workspaces, err := r.getWorkspaces(ctx, `WHERE w.workspace_id = $1`, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Workspace, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		JOIN workspace_members wm ON wm.workspace_id = w.workspace_id
		WHERE wm.user_id = $1
		ORDER BY w.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.getWorkspaces(ctx, query, userID, limit, offset)
}

func (r *PgxWorkspaceRepository) ListAllWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	return r.getWorkspaces(ctx, `ORDER BY w.created_at ASC`)
}

// SaveWorkspace inserts the workspace and its owner's membership in one transaction.
func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	m := mapping.ToModelWorkspace(workspace)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO workspaces (
				workspace_id, name, description, owner_id, workspace_type, icon, color, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, query,
			m.WorkspaceID, m.Name, m.Description, m.OwnerID, m.WorkspaceType, m.Icon, m.Color,
			m.CreatedAt, m.UpdatedAt,
		)
		if err != nil {
			return translateWriteError(err, "workspace ID "+m.WorkspaceID+" already exists", "owner does not exist", "failed to save workspace "+m.WorkspaceID)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO workspace_members (workspace_id, user_id, joined_at) VALUES ($1, $2, $3);`,
			m.WorkspaceID, m.OwnerID, m.CreatedAt,
		)
		if err != nil {
			return translateWriteError(err, "owner is already a member", "owner does not exist", "failed to add workspace owner as member")
		}
		return nil
	})
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	m := mapping.ToModelWorkspace(workspace)
	query := `
		UPDATE workspaces
		SET name = $1, description = $2, workspace_type = $3, icon = $4, color = $5, updated_at = $6
		WHERE workspace_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Name, m.Description, m.WorkspaceType, m.Icon, m.Color, m.UpdatedAt, m.WorkspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workspace "+m.WorkspaceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWorkspace relies on ON DELETE CASCADE for members, categories, activities and minutes.
func (r *PgxWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityWorkspace, "workspaces", "workspace_id", workspaceID)
}

func (r *PgxWorkspaceRepository) AddMember(ctx context.Context, member domain.WorkspaceMember) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO workspace_members (workspace_id, user_id, joined_at) VALUES ($1, $2, $3);`,
		member.WorkspaceID, member.UserID, member.JoinedAt,
	)
	if err != nil {
		return translateWriteError(err, "User is already a member", "user or workspace does not exist",
			"failed to add user "+member.UserID+" to workspace "+member.WorkspaceID)
	}
	return nil
}

func (r *PgxWorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	if domain.DeletionPolicyFor(domain.EntityWorkspaceMember) != domain.HardDelete {
		return apperrors.NewInternalServerError("workspace membership cannot be soft-deleted")
	}
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2;`, workspaceID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove workspace member", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindMember(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT workspace_id, user_id, joined_at FROM workspace_members WHERE workspace_id = $1 AND user_id = $2;`,
		workspaceID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspace member", err)
	}
	defer rows.Close()
	ms, err := collect[models.WorkspaceMember](rows, "failed to collect workspace member")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &domain.WorkspaceMember{WorkspaceID: ms[0].WorkspaceID, UserID: ms[0].UserID, JoinedAt: ms[0].JoinedAt}, nil
}

func (r *PgxWorkspaceRepository) ListMembers(ctx context.Context, workspaceID string) ([]domain.MemberProfile, error) {
	query := `
		SELECT u.user_id, u.username, u.email, u.full_name, u.avatar_url, u.role, u.is_active, wm.joined_at
		FROM workspace_members wm
		JOIN users u ON u.user_id = wm.user_id
		WHERE wm.workspace_id = $1
		ORDER BY wm.joined_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspace members", err)
	}
	defer rows.Close()
	ms, err := collect[models.MemberProfile](rows, "failed to collect workspace members")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainMemberProfiles(ms), nil
}
