package repository

import (
	"context"
	"testing"
	"time"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
)

func TestAccessUpsertSingleRow(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewAccessRepository(db)

	user := seedUser(t, db, domain.RoleClient)
	course := seedCourse(t, db, "Course A")

	first, err := repo.Upsert(ctx, user.ID, course.ID, nil)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	expiry := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	second, err := repo.Upsert(ctx, user.ID, course.ID, &expiry)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	// Повторная выдача обновляет ту же строку, а не плодит новую
	if first.ID != second.ID {
		t.Errorf("re-grant created a new row: %s vs %s", first.ID, second.ID)
	}

	var count int64
	db.Model(&domain.CourseAccess{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("expected 1 access row, got %d", count)
	}

	if second.ExpiresAt == nil || !second.ExpiresAt.UTC().Truncate(time.Second).Equal(expiry) {
		t.Errorf("expiry not overwritten on re-grant: %v", second.ExpiresAt)
	}
	if !second.IsActive {
		t.Error("re-grant must reactivate the row")
	}
}

func TestAccessRevokePreservesExpiry(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewAccessRepository(db)

	user := seedUser(t, db, domain.RoleClient)
	course := seedCourse(t, db, "Course B")

	expiry := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)
	granted, err := repo.Upsert(ctx, user.ID, course.ID, &expiry)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.Revoke(ctx, granted.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	after, err := repo.GetByID(ctx, granted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.IsActive {
		t.Error("revoke must clear IsActive")
	}
	// История: до какого числа был доступ, должна сохраниться
	if after.ExpiresAt == nil || !after.ExpiresAt.UTC().Truncate(time.Second).Equal(expiry) {
		t.Errorf("revoke must not touch ExpiresAt: got %v, want %v", after.ExpiresAt, expiry)
	}
}

func TestAccessRevokeMissing(t *testing.T) {
	db := testDatabase(t)
	repo := NewAccessRepository(db)

	err := repo.Revoke(context.Background(), uuid.New())
	if err != domain.ErrAccessNotFound {
		t.Errorf("Revoke of missing grant: got %v, want ErrAccessNotFound", err)
	}
}

func TestListEffectiveByUser(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewAccessRepository(db)

	user := seedUser(t, db, domain.RoleClient)
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	perpetual := seedCourse(t, db, "Perpetual")
	expired := seedCourse(t, db, "Expired")
	upcoming := seedCourse(t, db, "Upcoming")
	revoked := seedCourse(t, db, "Revoked")

	if _, err := repo.Upsert(ctx, user.ID, perpetual.ID, nil); err != nil {
		t.Fatalf("Upsert perpetual: %v", err)
	}
	// Активный, но истекший — действующим не считается
	if _, err := repo.Upsert(ctx, user.ID, expired.ID, &past); err != nil {
		t.Fatalf("Upsert expired: %v", err)
	}
	if _, err := repo.Upsert(ctx, user.ID, upcoming.ID, &future); err != nil {
		t.Fatalf("Upsert upcoming: %v", err)
	}
	g, err := repo.Upsert(ctx, user.ID, revoked.ID, nil)
	if err != nil {
		t.Fatalf("Upsert revoked: %v", err)
	}
	if err := repo.Revoke(ctx, g.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	effective, err := repo.ListEffectiveByUser(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("ListEffectiveByUser: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, a := range effective {
		got[a.CourseID] = true
		if a.Course.ID == uuid.Nil {
			t.Error("course summary must be joined in")
		}
	}
	if len(effective) != 2 || !got[perpetual.ID] || !got[upcoming.ID] {
		t.Errorf("effective set wrong: %v", got)
	}
}
