package sql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/kubex/rubix-membersearch/rubix"
)

const (
	mySQLDuplicateEntry   = 1062
	sqlLiteDuplicateEntry = 1555
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (p *Provider) FetchMemberships(ctx context.Context) (rubix.MembershipList, error) {
	if p.primaryConnection == nil {
		return rubix.MembershipList{}, ErrNotConnected
	}

	rows, err := p.primaryConnection.QueryContext(ctx, "SELECT `id`, `user`, `role` FROM memberships ORDER BY `seq`")
	if err != nil {
		return rubix.MembershipList{}, err
	}
	defer rows.Close()

	var memberships []rubix.Membership
	for rows.Next() {
		var m rubix.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role); err != nil {
			return rubix.MembershipList{}, err
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return rubix.MembershipList{}, err
	}
	return rubix.NewMembershipList(memberships...), nil
}

func (p *Provider) FetchUsers(ctx context.Context) (rubix.UserList, error) {
	if p.primaryConnection == nil {
		return rubix.UserList{}, ErrNotConnected
	}

	rows, err := p.primaryConnection.QueryContext(ctx, "SELECT `user`, `name`, `email` FROM users ORDER BY `seq`")
	if err != nil {
		return rubix.UserList{}, err
	}
	defer rows.Close()

	var users []rubix.User
	for rows.Next() {
		var u rubix.User
		email := sql.NullString{}
		if err := rows.Scan(&u.ID, &u.Name, &email); err != nil {
			return rubix.UserList{}, err
		}
		u.Email = email.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return rubix.UserList{}, err
	}
	return rubix.NewUserList(users...), nil
}

// CreateUser stores a user. An existing user with the same id is left untouched.
func (p *Provider) CreateUser(ctx context.Context, user rubix.User) error {
	if p.primaryConnection == nil {
		return ErrNotConnected
	}
	return p.createUser(ctx, p.primaryConnection, user)
}

// AddMembership stores a membership. An existing membership with the same id is left untouched.
func (p *Provider) AddMembership(ctx context.Context, membership rubix.Membership) error {
	if p.primaryConnection == nil {
		return ErrNotConnected
	}
	return p.addMembership(ctx, p.primaryConnection, membership)
}

// Import writes users then memberships in a single transaction.
func (p *Provider) Import(ctx context.Context, memberships rubix.MembershipList, users rubix.UserList) error {
	if p.primaryConnection == nil {
		return ErrNotConnected
	}

	tx, err := p.primaryConnection.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, u := range users.Users() {
		if err = p.createUser(ctx, tx, u); err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	for _, m := range memberships.Memberships() {
		if err = p.addMembership(ctx, tx, m); err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	return tx.Commit()
}

func (p *Provider) createUser(ctx context.Context, db execer, user rubix.User) error {
	if user.ID == "" {
		return rubix.ErrInvalidID
	}

	var email any
	if user.Email != "" {
		email = user.Email
	}
	_, err := db.ExecContext(ctx, "INSERT INTO users (`user`, `name`, `email`) VALUES (?, ?, ?)", string(user.ID), user.Name, email)
	if p.isDuplicateConflict(err) {
		return nil
	}
	return err
}

func (p *Provider) addMembership(ctx context.Context, db execer, membership rubix.Membership) error {
	if membership.ID == "" || membership.UserID == "" {
		return rubix.ErrInvalidID
	}

	_, err := db.ExecContext(ctx, "INSERT INTO memberships (`id`, `user`, `role`) VALUES (?, ?, ?)", string(membership.ID), string(membership.UserID), string(membership.Role))
	if p.isDuplicateConflict(err) {
		return nil
	}
	return err
}

func (p *Provider) isDuplicateConflict(err error) bool {
	var me1 *mysql.MySQLError
	if errors.As(err, &me1) && (me1.Number == mySQLDuplicateEntry || me1.Number == sqlLiteDuplicateEntry) {
		return true
	}
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}
	return false
}
