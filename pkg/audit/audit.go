package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey struct{}

// Principal identifies the authenticated actor on whose behalf a
// database write happens.
type Principal struct {
	UserID   uuid.UUID
	Username string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

const (
	createdByColumn = "created_by"
	updatedByColumn = "updated_by"
)

// Register installs gorm callbacks that stamp created_by and updated_by
// from the principal carried on the statement context. Models without
// those columns are left untouched.
func Register(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("audit:stamp_create", stampCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("audit:stamp_update", stampUpdate)
}

func stampCreate(tx *gorm.DB) {
	actor, ok := actorName(tx)
	if !ok {
		return
	}
	setColumn(tx, createdByColumn, actor)
	setColumn(tx, updatedByColumn, actor)
}

func stampUpdate(tx *gorm.DB) {
	actor, ok := actorName(tx)
	if !ok {
		return
	}
	setColumn(tx, updatedByColumn, actor)
}

func actorName(tx *gorm.DB) (string, bool) {
	if tx.Statement == nil {
		return "", false
	}
	p, ok := PrincipalFromContext(tx.Statement.Context)
	if !ok || p.Username == "" {
		return "", false
	}
	return p.Username, true
}

func setColumn(tx *gorm.DB, column string, value string) {
	if tx.Statement.Schema == nil {
		return
	}
	if field := tx.Statement.Schema.LookUpField(column); field != nil {
		tx.Statement.SetColumn(column, value)
	}
}
