package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/storage"
	"github.com/cesargomez89/mekkompis/internal/store"
)

type testEnv struct {
	db          *store.DB
	files       *storage.Store
	motorcycles *MotorcycleService
	jobs        *JobService
	images      *ImageService
	notes       *NoteService
	shopping    *ShoppingService
	features    *FeatureService
}

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	db, err := store.NewSQLiteDB(filepath.Join(dir, "test_app.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Discard()
	files, err := storage.NewStore(filepath.Join(dir, "uploads"), log)
	if err != nil {
		t.Fatalf("Failed to create upload store: %v", err)
	}

	clock := clockwork.NewFakeClockAt(testNow)
	motorcycles := NewMotorcycleService(db, files, log)
	motorcycles.Clock = clock
	jobs := NewJobService(db, files, log)
	jobs.Clock = clock

	return &testEnv{
		db:          db,
		files:       files,
		motorcycles: motorcycles,
		jobs:        jobs,
		images:      NewImageService(db, files, log),
		notes:       NewNoteService(db, log),
		shopping:    NewShoppingService(db, log),
		features:    NewFeatureService(db, log),
	}
}

func ptr[T any](v T) *T { return &v }

func jpeg(name string) *storage.Upload {
	return &storage.Upload{Filename: name, ContentType: "image/jpeg", Body: strings.NewReader("img")}
}

func fileExists(t *testing.T, files *storage.Store, name string) bool {
	t.Helper()
	path, err := files.Path(name)
	if err != nil {
		t.Fatalf("Path(%q) failed: %v", name, err)
	}
	_, err = os.Stat(path)
	return err == nil
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
}

func TestMotorcycleService_CreateAndList(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	m, err := env.motorcycles.Create(ctx, &domain.Motorcycle{Brand: "Honda", Model: "CB500"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.ID == 0 || m.ImageFilename != nil {
		t.Errorf("Unexpected motorcycle %+v", m)
	}

	list, err := env.motorcycles.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].JobCount != 0 || list[0].TotalCost != 0 {
		t.Errorf("Expected one motorcycle with zero stats, got %+v", list)
	}
}

func TestMotorcycleService_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		m    domain.Motorcycle
	}{
		{"missing brand", domain.Motorcycle{Model: "CB500"}},
		{"blank model", domain.Motorcycle{Brand: "Honda", Model: "  "}},
		{"year too old", domain.Motorcycle{Brand: "Honda", Model: "CB500", Year: ptr(int64(1899))}},
		{"year too new", domain.Motorcycle{Brand: "Honda", Model: "CB500", Year: ptr(int64(2026))}},
		{"negative mileage", domain.Motorcycle{Brand: "Honda", Model: "CB500", CurrentMileage: ptr(int64(-1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m
			_, err := env.motorcycles.Create(ctx, &m, jpeg("bike.jpg"))
			assertValidation(t, err)
		})
	}

	entries, _ := os.ReadDir(env.files.Dir())
	if len(entries) != 0 {
		t.Errorf("Expected no files written for invalid input, found %d", len(entries))
	}

	if _, err := env.motorcycles.Create(ctx, &domain.Motorcycle{Brand: "Honda", Model: "CB500", Year: ptr(int64(2025))}, nil); err != nil {
		t.Errorf("Expected next year to be accepted, got %v", err)
	}
}

func TestMotorcycleService_ImageReplacement(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	m, err := env.motorcycles.Create(ctx, &domain.Motorcycle{Brand: "BMW", Model: "R1250"}, jpeg("first.jpg"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.ImageFilename == nil {
		t.Fatal("Expected image filename")
	}
	first := *m.ImageFilename
	if !fileExists(t, env.files, first) {
		t.Fatal("Expected first image on disk")
	}

	updated, err := env.motorcycles.Update(ctx, m.ID, &domain.Motorcycle{Brand: "BMW", Model: "R1250 GS"}, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ImageFilename == nil || *updated.ImageFilename != first {
		t.Error("Expected image to be kept when no new file is sent")
	}

	updated, err = env.motorcycles.Update(ctx, m.ID, &domain.Motorcycle{Brand: "BMW", Model: "R1250 GS"}, jpeg("second.jpg"))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	second := *updated.ImageFilename
	if second == first || !strings.HasSuffix(second, "-second.jpg") {
		t.Errorf("Expected new image name, got %q", second)
	}
	if fileExists(t, env.files, first) {
		t.Error("Expected old image to be removed")
	}
	if !fileExists(t, env.files, second) {
		t.Error("Expected new image on disk")
	}

	if _, err := env.motorcycles.Update(ctx, m.ID+10, &domain.Motorcycle{Brand: "x", Model: "y"}, jpeg("third.jpg")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	entries, _ := os.ReadDir(env.files.Dir())
	if len(entries) != 1 {
		t.Errorf("Expected only the current image on disk, found %d files", len(entries))
	}
}

func TestMotorcycleService_DeleteKeepsJobs(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	m, _ := env.motorcycles.Create(ctx, &domain.Motorcycle{Brand: "Honda", Model: "CB500"}, jpeg("bike.jpg"))
	job, err := env.jobs.CreateJob(ctx, &domain.Job{MotorcycleID: &m.ID, Title: "Oil change", Date: "2024-06-01"})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	jobImage, err := env.images.Upload(ctx, job.ID, *jpeg("filter.jpg"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if err := env.motorcycles.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fileExists(t, env.files, *m.ImageFilename) {
		t.Error("Expected motorcycle image to be removed")
	}
	if !fileExists(t, env.files, jobImage.Filename) {
		t.Error("Expected job image to stay")
	}

	detail, err := env.jobs.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("Expected job to survive, got %v", err)
	}
	if detail.MotorcycleID != nil {
		t.Error("Expected motorcycle_id to be null")
	}
	if len(detail.Images) != 1 {
		t.Errorf("Expected job image row to stay, got %d", len(detail.Images))
	}

	if err := env.motorcycles.Delete(ctx, m.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMotorcycleService_Get(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	m, _ := env.motorcycles.Create(ctx, &domain.Motorcycle{Brand: "Honda", Model: "CB500"}, nil)
	for _, cost := range []*float64{ptr(100.0), ptr(250.25), nil} {
		if _, err := env.jobs.CreateJob(ctx, &domain.Job{MotorcycleID: &m.ID, Title: "Job", Date: "2024-06-01", Cost: cost}); err != nil {
			t.Fatalf("CreateJob failed: %v", err)
		}
	}

	detail, err := env.motorcycles.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.JobCount != 3 || detail.TotalCost != 350.25 || len(detail.Jobs) != 3 {
		t.Errorf("Unexpected detail stats=%+v jobs=%d", detail.MotorcycleStats, len(detail.Jobs))
	}

	if _, err := env.motorcycles.Get(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestJobService_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		job  domain.Job
		ok   bool
	}{
		{"valid", domain.Job{Title: "Oil", Date: "2024-06-15"}, true},
		{"one month ahead", domain.Job{Title: "Oil", Date: "2024-07-15"}, true},
		{"missing title", domain.Job{Date: "2024-06-15"}, false},
		{"missing date", domain.Job{Title: "Oil"}, false},
		{"bad format", domain.Job{Title: "Oil", Date: "15/06/2024"}, false},
		{"too far ahead", domain.Job{Title: "Oil", Date: "2024-07-16"}, false},
		{"negative cost", domain.Job{Title: "Oil", Date: "2024-06-15", Cost: ptr(-5.0)}, false},
		{"negative mileage", domain.Job{Title: "Oil", Date: "2024-06-15", Mileage: ptr(int64(-5))}, false},
		{"unknown motorcycle", domain.Job{Title: "Oil", Date: "2024-06-15", MotorcycleID: ptr(int64(77))}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := tt.job
			_, err := env.jobs.CreateJob(ctx, &job)
			if tt.ok {
				if err != nil {
					t.Errorf("Expected success, got %v", err)
				}
				return
			}
			assertValidation(t, err)
		})
	}
}

func TestJobService_UpdateAndToggle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	job, _ := env.jobs.CreateJob(ctx, &domain.Job{Title: "Oil change", Date: "2024-06-01"})

	completed, err := env.jobs.ToggleCompleted(ctx, job.ID)
	if err != nil || !completed {
		t.Fatalf("Expected completed after first toggle, got %v (%v)", completed, err)
	}
	completed, _ = env.jobs.ToggleCompleted(ctx, job.ID)
	if completed {
		t.Error("Expected second toggle to restore")
	}

	updated, err := env.jobs.UpdateJob(ctx, job.ID, &domain.Job{Title: "Oil and filter", Date: "2024-06-02", Cost: ptr(300.0)})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}
	if updated.Title != "Oil and filter" || updated.Date != "2024-06-02" {
		t.Errorf("Unexpected job %+v", updated)
	}

	if _, err := env.jobs.UpdateJob(ctx, 999, &domain.Job{Title: "x", Date: "2024-06-02"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := env.jobs.ToggleCompleted(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestJobService_DeleteRemovesChildrenAndFiles(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	job, _ := env.jobs.CreateJob(ctx, &domain.Job{Title: "Brakes", Date: "2024-06-01"})
	var names []string
	for _, n := range []string{"a.jpg", "b.jpg"} {
		img, err := env.images.Upload(ctx, job.ID, *jpeg(n))
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		names = append(names, img.Filename)
	}
	// one file already gone must not fail the delete
	if err := env.files.Remove(names[1]); err != nil {
		t.Fatal(err)
	}
	if _, err := env.notes.Create(ctx, job.ID, "pads worn"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.shopping.Create(ctx, job.ID, "Brake pads", ptr(int64(2))); err != nil {
		t.Fatal(err)
	}

	if err := env.jobs.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob failed: %v", err)
	}

	for _, name := range names {
		if fileExists(t, env.files, name) {
			t.Errorf("Expected %s to be removed", name)
		}
	}
	if _, err := env.jobs.GetJob(ctx, job.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	notes, _ := env.db.ListNotesByJob(ctx, job.ID)
	items, _ := env.db.ListShoppingItemsByJob(ctx, job.ID)
	if len(notes) != 0 || len(items) != 0 {
		t.Errorf("Expected children gone, got %d notes and %d items", len(notes), len(items))
	}
}

func TestImageService(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	if _, err := env.images.Upload(ctx, 404, *jpeg("x.jpg")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown job, got %v", err)
	}
	entries, _ := os.ReadDir(env.files.Dir())
	if len(entries) != 0 {
		t.Error("Expected nothing written for unknown job")
	}

	job, _ := env.jobs.CreateJob(ctx, &domain.Job{Title: "Paint", Date: "2024-06-01"})
	_, err := env.images.Upload(ctx, job.ID, storage.Upload{Filename: "x.txt", ContentType: "text/plain", Body: strings.NewReader("x")})
	if !errors.Is(err, storage.ErrNotImage) {
		t.Errorf("Expected ErrNotImage, got %v", err)
	}

	img, err := env.images.Upload(ctx, job.ID, *jpeg("../../etc/passwd.jpg"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if img.OriginalName != "../../etc/passwd.jpg" {
		t.Errorf("Expected original name kept as label, got %q", img.OriginalName)
	}
	if strings.ContainsAny(img.Filename, `/\`) {
		t.Errorf("Stored filename has separators: %q", img.Filename)
	}

	if err := env.images.Delete(ctx, img.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fileExists(t, env.files, img.Filename) {
		t.Error("Expected image file removed")
	}
	if err := env.images.Delete(ctx, img.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNoteService(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	job, _ := env.jobs.CreateJob(ctx, &domain.Job{Title: "Valves", Date: "2024-06-01"})

	if _, err := env.notes.Create(ctx, job.ID, ""); err == nil {
		t.Error("Expected validation error for empty note")
	} else {
		assertValidation(t, err)
	}
	if _, err := env.notes.Create(ctx, 999, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	env.notes.Create(ctx, job.ID, "first")
	notes, err := env.notes.Create(ctx, job.ID, "second")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(notes) != 2 || notes[0].Content != "first" || notes[1].Content != "second" {
		t.Fatalf("Expected full list in order, got %+v", notes)
	}

	if err := env.notes.Update(ctx, notes[0].ID, "first edited"); err != nil {
		t.Errorf("Update failed: %v", err)
	}
	if err := env.notes.Update(ctx, notes[0].ID, " "); err == nil {
		t.Error("Expected validation error on blank update")
	}
	if err := env.notes.Delete(ctx, notes[1].ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := env.notes.Delete(ctx, notes[1].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestShoppingService(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	job, _ := env.jobs.CreateJob(ctx, &domain.Job{Title: "Service", Date: "2024-06-01"})

	items, err := env.shopping.Create(ctx, job.ID, "Oil filter", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 1 || items[0].Purchased {
		t.Fatalf("Expected default quantity 1 and not purchased, got %+v", items)
	}

	if _, err := env.shopping.Create(ctx, job.ID, "", nil); err == nil {
		t.Error("Expected validation error for missing name")
	}
	if _, err := env.shopping.Create(ctx, job.ID, "Oil", ptr(int64(0))); err == nil {
		t.Error("Expected validation error for zero quantity")
	}

	id := items[0].ID
	updated, err := env.shopping.Update(ctx, id, nil, ptr(int64(3)))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ItemName != "Oil filter" || updated.Quantity != 3 {
		t.Errorf("Expected partial update to keep name, got %+v", updated)
	}

	purchased, err := env.shopping.TogglePurchased(ctx, id)
	if err != nil || !purchased {
		t.Errorf("Expected purchased after toggle, got %v (%v)", purchased, err)
	}

	updated, _ = env.shopping.Update(ctx, id, ptr("Oil filter HF204"), nil)
	if updated.Quantity != 3 || !updated.Purchased {
		t.Errorf("Expected quantity and purchased untouched, got %+v", updated)
	}

	if _, err := env.shopping.Update(ctx, 999, ptr("x"), nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := env.shopping.Delete(ctx, id); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
}

func TestFeatureService(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	f, err := env.features.Create(ctx, &domain.Feature{Title: "Export"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if f.Status != domain.FeatureStatusBacklog {
		t.Errorf("Expected default status backlog, got %s", f.Status)
	}

	if _, err := env.features.Create(ctx, &domain.Feature{Title: "x", Status: "archived"}); err == nil {
		t.Error("Expected invalid status to be rejected")
	}

	f, err = env.features.UpdateStatus(ctx, f.ID, domain.FeatureStatusDone)
	if err != nil || f.Status != domain.FeatureStatusDone {
		t.Errorf("UpdateStatus failed: %+v (%v)", f, err)
	}
	if _, err := env.features.UpdateStatus(ctx, f.ID, "nope"); err == nil {
		t.Error("Expected invalid status error")
	}

	f, err = env.features.Update(ctx, f.ID, "Export PDF", "per bike")
	if err != nil || f.Title != "Export PDF" || f.Description != "per bike" {
		t.Errorf("Update failed: %+v (%v)", f, err)
	}

	if err := env.features.Delete(ctx, f.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if _, err := env.features.Get(ctx, f.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUploadSweeper(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	m, _ := env.motorcycles.Create(ctx, &domain.Motorcycle{Brand: "KTM", Model: "Duke"}, jpeg("bike.jpg"))
	orphan := filepath.Join(env.files.Dir(), "orphan.jpg")
	if err := os.WriteFile(orphan, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sweeper := NewUploadSweeper(env.db, env.files, logger.Discard())
	sweeper.Grace = 0

	n, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 file removed, got %d", n)
	}
	if _, err := os.Stat(orphan); !os.IsNotExist(err) {
		t.Error("Expected orphan to be removed")
	}
	if !fileExists(t, env.files, *m.ImageFilename) {
		t.Error("Expected referenced image to stay")
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Message: "Titel och datum krävs"},
		{Field: "cost", Message: "får inte vara negativ"},
	}}
	if got := err.Error(); got != "Titel och datum krävs; cost: får inte vara negativ" {
		t.Errorf("Error() = %q", got)
	}
	if m := err.ToMap(); len(m) != 1 || m["cost"] != "får inte vara negativ" {
		t.Errorf("ToMap() = %v", m)
	}
}
