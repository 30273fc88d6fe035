package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vismithaN/advertisement/internal/match/application/ports/out"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
)

// Loader заполняет stores из bootstrap-файлов (один JSON объект на строку).
// Битая строка пропускается с логом — частичный каталог допустим.
type Loader struct {
	profiles out.ProfileStore
	catalog  out.CatalogStore
	log      *logger.Logger
}

// NewLoader создает новый bootstrap loader
func NewLoader(profiles out.ProfileStore, catalog out.CatalogStore, log *logger.Logger) *Loader {
	return &Loader{
		profiles: profiles,
		catalog:  catalog,
		log:      log,
	}
}

// Load загружает riders и businesses. Вызывается до старта consumer-а:
// live-события не обрабатываются, пока bootstrap не завершен.
func (l *Loader) Load(ctx context.Context, ridersFile, businessesFile string) error {
	riders, err := l.loadRiders(ctx, ridersFile)
	if err != nil {
		return fmt.Errorf("load riders: %w", err)
	}

	businesses, err := l.loadBusinesses(ctx, businessesFile)
	if err != nil {
		return fmt.Errorf("load businesses: %w", err)
	}

	l.log.Info(logger.Entry{
		Action:  "bootstrap_complete",
		Message: fmt.Sprintf("loaded %d riders, %d businesses", riders, businesses),
	})

	return nil
}

func (l *Loader) loadRiders(ctx context.Context, path string) (int, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("open riders file: %w", err)
	}
	defer f.Close()

	loaded := 0
	lineNo := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var profile domain.RiderProfile
		if err := json.Unmarshal(line, &profile); err != nil {
			l.log.Warn(logger.Entry{
				Action:  "rider_record_skipped",
				Message: err.Error(),
				Additional: map[string]any{
					"file": path,
					"line": lineNo,
				},
			})
			continue
		}

		// Метки появятся только с первым RIDER_STATUS
		if len(profile.Tags) == 0 {
			profile.Tags = domain.NewTagSet(domain.TagOthers)
		}

		if err := l.profiles.Put(ctx, &profile); err != nil {
			return loaded, fmt.Errorf("put rider %d: %w", profile.UserID, err)
		}
		loaded++
	}
	if err := sc.Err(); err != nil {
		return loaded, fmt.Errorf("scan riders file: %w", err)
	}

	return loaded, nil
}

func (l *Loader) loadBusinesses(ctx context.Context, path string) (int, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("open businesses file: %w", err)
	}
	defer f.Close()

	loaded := 0
	lineNo := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var business domain.BusinessProfile
		if err := json.Unmarshal(line, &business); err != nil {
			l.log.Warn(logger.Entry{
				Action:  "business_record_skipped",
				Message: err.Error(),
				Additional: map[string]any{
					"file": path,
					"line": lineNo,
				},
			})
			continue
		}

		// tag вычисляется один раз при загрузке и больше не пересчитывается
		business.Tag = domain.ClassifyCategory(business.Categories)

		if err := l.catalog.Put(ctx, &business); err != nil {
			return loaded, fmt.Errorf("put business %s: %w", business.StoreID, err)
		}
		loaded++
	}
	if err := sc.Err(); err != nil {
		return loaded, fmt.Errorf("scan businesses file: %w", err)
	}

	return loaded, nil
}
