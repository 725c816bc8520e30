package repository

import (
	"context"
	"testing"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
)

func TestDeleteCascadeLeavesNoOrphans(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()

	courses := NewCourseRepository(db, nil)
	accesses := NewAccessRepository(db)
	progresses := NewProgressRepository(db)

	course := seedCourse(t, db, "Doomed")
	v1 := seedVideo(t, db, course.ID, "v1", 1)
	seedVideo(t, db, course.ID, "v2", 2)

	u1 := seedUser(t, db, domain.RoleClient)
	u2 := seedUser(t, db, domain.RoleClient)
	u3 := seedUser(t, db, domain.RoleClient)
	for _, u := range []*domain.User{u1, u2, u3} {
		if _, err := accesses.Upsert(ctx, u.ID, course.ID, nil); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	if err := progresses.Upsert(ctx, u1.ID, v1.ID, 50); err != nil {
		t.Fatalf("progress Upsert: %v", err)
	}

	if err := courses.DeleteCascade(ctx, course.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	var n int64
	db.Model(&domain.Course{}).Where("id = ?", course.ID).Count(&n)
	if n != 0 {
		t.Error("course row must be gone")
	}
	db.Model(&domain.Video{}).Where("course_id = ?", course.ID).Count(&n)
	if n != 0 {
		t.Errorf("orphaned videos: %d", n)
	}
	db.Model(&domain.CourseAccess{}).Where("course_id = ?", course.ID).Count(&n)
	if n != 0 {
		t.Errorf("orphaned accesses: %d", n)
	}
	db.Model(&domain.VideoProgress{}).Where("video_id = ?", v1.ID).Count(&n)
	if n != 0 {
		t.Errorf("orphaned progress rows: %d", n)
	}
}

func TestDeleteCascadeMissingCourse(t *testing.T) {
	db := testDatabase(t)
	courses := NewCourseRepository(db, nil)

	err := courses.DeleteCascade(context.Background(), uuid.New())
	if err != domain.ErrCourseNotFound {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestCourseCounts(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()

	courses := NewCourseRepository(db, nil)
	accesses := NewAccessRepository(db)

	course := seedCourse(t, db, "Counted")
	seedVideo(t, db, course.ID, "v1", 1)
	seedVideo(t, db, course.ID, "v2", 2)

	active := seedUser(t, db, domain.RoleClient)
	revokedUser := seedUser(t, db, domain.RoleClient)
	if _, err := accesses.Upsert(ctx, active.ID, course.ID, nil); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	g, err := accesses.Upsert(ctx, revokedUser.ID, course.ID, nil)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := accesses.Revoke(ctx, g.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	videos, activeAccesses, err := courses.Counts(ctx, course.ID)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if videos != 2 {
		t.Errorf("videos = %d, want 2", videos)
	}
	// Отозванный доступ в счетчик активных не попадает
	if activeAccesses != 1 {
		t.Errorf("activeAccesses = %d, want 1", activeAccesses)
	}
}
