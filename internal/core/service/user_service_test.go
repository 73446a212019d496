package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

func TestUserService_SetRole_RevokesSessions(t *testing.T) {
	users := newStubUserRepo()
	registry := newMemRegistry()
	svc := NewUserService(users, registry, zerolog.Nop())

	user, _ := users.Create(context.Background(), &domain.User{
		Name: "Alice", Email: "alice@example.com", Role: domain.RoleBuyer,
	})
	_ = registry.Save(context.Background(), &domain.Session{ID: "s1", UserID: user.ID, Role: domain.RoleBuyer})
	_ = registry.Save(context.Background(), &domain.Session{ID: "s2", UserID: "someone-else", Role: domain.RoleBuyer})

	updated, err := svc.SetRole(context.Background(), user.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", updated.Role)
	}

	// The promoted user's sessions are gone; the unrelated one survives.
	if _, err := registry.Find(context.Background(), "s1"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected session s1 revoked, got %v", err)
	}
	if _, err := registry.Find(context.Background(), "s2"); err != nil {
		t.Fatalf("unrelated session must survive, got %v", err)
	}
}

func TestUserService_SetRole_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newMemRegistry(), zerolog.Nop())

	if _, err := svc.SetRole(context.Background(), "u1", domain.Role("superuser")); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newMemRegistry(), zerolog.Nop())

	user, _ := users.Create(context.Background(), &domain.User{Name: "Old", Email: "x@example.com"})

	updated, err := svc.UpdateProfile(context.Background(), user.ID, "New Name")
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("expected renamed user, got %s", updated.Name)
	}

	if _, err := svc.UpdateProfile(context.Background(), user.ID, ""); err == nil {
		t.Fatalf("expected empty name rejection")
	}
}

func TestUserService_ListUsers_NormalizesPagination(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newMemRegistry(), zerolog.Nop())

	page, err := svc.ListUsers(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultPageLimit {
		t.Fatalf("expected normalized pagination, got page=%d limit=%d", page.Page, page.Limit)
	}
}
