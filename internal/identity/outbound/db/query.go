package db

import "github.com/azizbek-web-dev/phonegate/internal/identity/entity"

const accountColumns = `id, full_name, username, phone, email, password_hash,
	phone_verified_at, otp_code, otp_expires_at, created_at, updated_at`

const queryGetAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

const queryCreateAccount = `INSERT INTO accounts (` + accountColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const queryIssueOTP = `UPDATE accounts
	SET otp_code = $2, otp_expires_at = $3, updated_at = $4
	WHERE id = $1 AND phone_verified_at IS NULL`

// The predicate and the clearing happen in one statement. A concurrent
// update of the same row re-evaluates the WHERE clause after the winner
// commits and then finds otp_code NULL.
const queryVerifyPhone = `UPDATE accounts
	SET phone_verified_at = $3, otp_code = NULL, otp_expires_at = NULL, updated_at = $3
	WHERE phone = $1 AND otp_code = $2 AND otp_expires_at > $3 AND phone_verified_at IS NULL
	RETURNING ` + accountColumns

const queryUpdateProfile = `UPDATE accounts
	SET full_name = COALESCE($2, full_name), username = COALESCE($3, username), updated_at = $4
	WHERE id = $1
	RETURNING ` + accountColumns

var queryGetAccountByLogin = map[entity.LoginField]string{
	entity.LoginFieldUsername: `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`,
	entity.LoginFieldPhone:    `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1`,
	entity.LoginFieldEmail:    `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`,
}

var queryAccountExists = map[entity.LoginField]string{
	entity.LoginFieldUsername: `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1 AND id <> $2)`,
	entity.LoginFieldPhone:    `SELECT EXISTS (SELECT 1 FROM accounts WHERE phone = $1 AND id <> $2)`,
	entity.LoginFieldEmail:    `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 AND id <> $2)`,
}
