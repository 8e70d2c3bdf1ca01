package generator

import (
	"context"
	"fmt"
	"log"

	"commerce-seeder/internal/model"
)

// UserSummary is what later stages need to know about a created user
type UserSummary struct {
	ID       uint
	Username string
	Email    string
	Nickname string
	Role     model.Role
}

// Cohorts groups created users by role
type Cohorts struct {
	Customers []UserSummary
	Merchants []UserSummary
	Admins    []UserSummary
}

// All returns every created user, customers first
func (c Cohorts) All() []UserSummary {
	all := make([]UserSummary, 0, len(c.Customers)+len(c.Merchants)+len(c.Admins))
	all = append(all, c.Customers...)
	all = append(all, c.Merchants...)
	return append(all, c.Admins...)
}

// CreateUsers creates the customer, merchant and admin cohorts in that order
func (g *Generator) CreateUsers(ctx context.Context, customers, merchants, admins int) (Cohorts, error) {
	log.Println("Creating users...")

	var cohorts Cohorts
	var err error
	if cohorts.Customers, err = g.createCohort(ctx, "customer", model.RoleCustomer, customers); err != nil {
		return cohorts, err
	}
	if cohorts.Merchants, err = g.createCohort(ctx, "merchant", model.RoleMerchant, merchants); err != nil {
		return cohorts, err
	}
	if cohorts.Admins, err = g.createCohort(ctx, "admin", model.RoleAdmin, admins); err != nil {
		return cohorts, err
	}

	log.Println("Users creation complete")
	return cohorts, nil
}

func (g *Generator) createCohort(ctx context.Context, label string, role model.Role, n int) ([]UserSummary, error) {
	created := make([]UserSummary, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		// collisions are not checked; the unique index reports them as a row error
		username := fmt.Sprintf("%s%d", g.fake.Username(), 100+g.rng.IntN(900))

		hashed, err := g.hasher.HashPassword(DefaultPassword)
		if err != nil {
			log.Printf("Error creating %s %s: %v", label, username, err)
			continue
		}

		now := g.now()
		user := &model.User{
			Username:  username,
			Email:     g.fake.Email(),
			Password:  hashed,
			Nickname:  g.fake.Name(),
			Avatar:    g.avatars.Provision().ToPointer(),
			Role:      role,
			Status:    model.UserStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := g.users.CreateUser(ctx, user); err != nil {
			log.Printf("Error creating %s %s: %v", label, username, err)
			continue
		}

		log.Printf("Created %s: %s (ID: %d) with role %s", label, user.Username, user.ID, user.Role)
		created = append(created, UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Nickname: user.Nickname,
			Role:     user.Role,
		})
	}
	return created, nil
}
