package usecase

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/St1cky1/flight-planner/internal/repository"
)

const (
	defaultImportConcurrency = 3
	importTimeout            = 30 * time.Second
)

var importExtensions = map[string]entity.MediaType{
	".png":  entity.MediaTypePNG,
	".jpg":  entity.MediaTypeJPEG,
	".jpeg": entity.MediaTypeJPEG,
	".webp": entity.MediaTypeWebP,
}

// AvatarUploader - то, что нужно импорту от AvatarService
type AvatarUploader interface {
	HasAvatar(ctx context.Context, employeeID string) (bool, error)
	PutAvatar(ctx context.Context, req *entity.UploadAvatarRequest) error
}

type ImportSummary struct {
	Total    int
	Uploaded int
	Skipped  int
	Failed   int
	Duration time.Duration
}

type importFile struct {
	employeeID  string
	path        string
	contentType entity.MediaType
}

// ImportAvatars загружает аватарки из каталога: файл <employee_id>.<png|jpg|jpeg|webp>.
// Файл неизвестного сотрудника считается ошибкой, если аватарка уже есть - пропускается.
func ImportAvatars(
	ctx context.Context,
	avatars AvatarUploader,
	employees repository.IEmployeeRepository,
	dir string,
	concurrency int,
) (*ImportSummary, error) {
	files, err := listImportFiles(dir)
	if err != nil {
		return nil, err
	}

	if concurrency <= 0 {
		concurrency = defaultImportConcurrency
	}

	log.Printf("Начинаем загрузку %d аватарок из %s...", len(files), dir)

	summary := &ImportSummary{Total: len(files)}
	start := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	semaphore := make(chan struct{}, concurrency)

	for _, f := range files {
		wg.Add(1)
		go func(f importFile) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			exists, err := employees.Exists(ctx, f.employeeID)
			if err == nil && !exists {
				err = fmt.Errorf("%w: %s", entity.ErrEmployeeNotFound, f.employeeID)
			}

			has := false
			if err == nil {
				has, err = avatars.HasAvatar(ctx, f.employeeID)
			}
			if err == nil && has {
				mu.Lock()
				log.Printf("⏭️  %s: уже есть аватарка, пропускаем", f.employeeID)
				summary.Skipped++
				mu.Unlock()
				return
			}

			if err == nil {
				err = importOne(ctx, avatars, f)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("❌ %s: ошибка загрузки - %v", f.employeeID, err)
				summary.Failed++
				return
			}
			log.Printf("✅ %s: аватарка загружена", f.employeeID)
			summary.Uploaded++
		}(f)
	}

	wg.Wait()
	summary.Duration = time.Since(start)

	if summary.Failed > 0 {
		return summary, fmt.Errorf("failed to import %d of %d avatars", summary.Failed, summary.Total)
	}
	return summary, nil
}

func importOne(ctx context.Context, avatars AvatarUploader, f importFile) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, importTimeout)
	defer cancel()

	return avatars.PutAvatar(ctxWithTimeout, &entity.UploadAvatarRequest{
		EmployeeID:  f.employeeID,
		Data:        data,
		ContentType: f.contentType.String(),
	})
}

func listImportFiles(dir string) ([]importFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read import dir: %w", err)
	}

	var files []importFile
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		contentType, ok := importExtensions[ext]
		if !ok {
			continue
		}
		files = append(files, importFile{
			employeeID:  strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			path:        filepath.Join(dir, e.Name()),
			contentType: contentType,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].employeeID < files[j].employeeID })
	return files, nil
}
