package repository

import (
	"context"
	"testing"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
)

func TestSameIDSet(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name     string
		current  []uuid.UUID
		incoming []uuid.UUID
		want     bool
	}{
		{"same order", []uuid.UUID{a, b, c}, []uuid.UUID{a, b, c}, true},
		{"shuffled", []uuid.UUID{a, b, c}, []uuid.UUID{c, a, b}, true},
		{"missing one", []uuid.UUID{a, b, c}, []uuid.UUID{a, b}, false},
		{"foreign id", []uuid.UUID{a, b}, []uuid.UUID{a, uuid.New()}, false},
		{"duplicate hides missing", []uuid.UUID{a, b}, []uuid.UUID{a, a}, false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameIDSet(tt.current, tt.incoming); got != tt.want {
				t.Errorf("sameIDSet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppendAfterGaps(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewVideoRepository(db, nil)

	course := seedCourse(t, db, "Gappy")
	seedVideo(t, db, course.ID, "v1", 1)
	seedVideo(t, db, course.ID, "v3", 3)
	seedVideo(t, db, course.ID, "v5", 5)

	v := &domain.Video{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    "appended",
		URL:      "https://youtu.be/dQw4w9WgXcQ",
	}
	if err := repo.Append(ctx, v); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// max+1, а не первая дырка
	if v.Order != 6 {
		t.Errorf("appended order = %d, want 6", v.Order)
	}
}

func TestAppendIntoEmptyCourse(t *testing.T) {
	db := testDatabase(t)
	repo := NewVideoRepository(db, nil)

	course := seedCourse(t, db, "Empty")
	v := &domain.Video{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    "first",
		URL:      "https://youtu.be/dQw4w9WgXcQ",
	}
	if err := repo.Append(context.Background(), v); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if v.Order != 1 {
		t.Errorf("first video order = %d, want 1", v.Order)
	}
}

func TestReorderAtomicOnMismatch(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewVideoRepository(db, nil)

	course := seedCourse(t, db, "Reorder")
	v1 := seedVideo(t, db, course.ID, "v1", 1)
	v2 := seedVideo(t, db, course.ID, "v2", 2)
	v3 := seedVideo(t, db, course.ID, "v3", 3)

	// Stale-список без v3 (как будто v3 добавили параллельно)
	err := repo.Reorder(ctx, course.ID, []uuid.UUID{v2.ID, v1.ID})
	if err != domain.ErrReorderMismatch {
		t.Fatalf("stale reorder: got %v, want ErrReorderMismatch", err)
	}

	// Старый порядок не тронут
	videos, err := repo.ListByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("ListByCourse: %v", err)
	}
	orders := map[uuid.UUID]int{}
	for _, v := range videos {
		orders[v.ID] = v.Order
	}
	if orders[v1.ID] != 1 || orders[v2.ID] != 2 || orders[v3.ID] != 3 {
		t.Errorf("failed reorder must leave orders untouched: %v", orders)
	}
}

func TestReorderAppliesFullOrder(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewVideoRepository(db, nil)

	course := seedCourse(t, db, "ReorderOK")
	v1 := seedVideo(t, db, course.ID, "v1", 1)
	v2 := seedVideo(t, db, course.ID, "v2", 2)
	v3 := seedVideo(t, db, course.ID, "v3", 3)

	if err := repo.Reorder(ctx, course.ID, []uuid.UUID{v3.ID, v1.ID, v2.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	videos, err := repo.ListByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("ListByCourse: %v", err)
	}
	want := []uuid.UUID{v3.ID, v1.ID, v2.ID}
	for i, v := range videos {
		if v.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, v.ID, want[i])
		}
	}
}

func TestDeleteKeepsGaps(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewVideoRepository(db, nil)

	course := seedCourse(t, db, "DeleteGaps")
	v1 := seedVideo(t, db, course.ID, "v1", 1)
	v2 := seedVideo(t, db, course.ID, "v2", 2)
	v3 := seedVideo(t, db, course.ID, "v3", 3)

	if err := repo.Delete(ctx, v2.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	videos, err := repo.ListByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("ListByCourse: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	// Никакой перенумерации: 1 и 3 остаются как были
	if videos[0].ID != v1.ID || videos[0].Order != 1 {
		t.Errorf("first: got %v/%d", videos[0].ID, videos[0].Order)
	}
	if videos[1].ID != v3.ID || videos[1].Order != 3 {
		t.Errorf("second: got %v/%d", videos[1].ID, videos[1].Order)
	}
}
