package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
)

type CredentialRepository interface {
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.Credential, error)
}

type credentialRepo struct {
	db database.DBTX
}

func NewCredentialRepository(db *sqlx.DB) CredentialRepository {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.GetContext(ctx, &cred, `
		SELECT id, mobile_number, password_hash
		FROM user_credentials
		WHERE mobile_number = $1
	`, mobileNumber)
	return HandleNotFound(&cred, err)
}
