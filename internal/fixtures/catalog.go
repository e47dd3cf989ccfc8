package fixtures

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// Entry is one novel in the catalog plus the bookkeeping the server sorts by.
type Entry struct {
	Novel     zeuzapi.Novel      `json:"novel"`
	CreatedAt time.Time          `json:"createdAt"`
	Featured  bool               `json:"featured"`
	Trend     map[string]float64 `json:"trend"` // score per time range
}

// Catalog is the in-memory data set behind the fixtures API.
type Catalog struct {
	Entries       []Entry                `json:"entries"`
	History       []zeuzapi.HistoryEntry `json:"history"`
	Notifications []zeuzapi.Notification `json:"notifications"`
	Unread        int                    `json:"unread"`
}

var (
	titleFirst = []string{"Shadow", "Crimson", "Silent", "Eternal", "Broken", "Golden", "Last", "Hidden", "Iron", "Azure"}
	titleLast  = []string{"Throne", "Sword", "Moon", "Archive", "Empire", "Path", "Garden", "Oath", "Tide", "Sanctum"}
	authors    = []string{"Layla Haddad", "Omar Nasser", "Mira Saleh", "Yusuf Karim", "Hana Idris", "Sami Aziz"}
	statuses   = []string{"مستمرة", "مستمرة", "مستمرة", "مكتملة", "متوقفة"}
)

// Generate builds a deterministic catalog of size novels. The same seed and
// now always yield the same IDs, titles and timestamps.
func Generate(seed int64, size int, now time.Time) Catalog {
	if size < 1 {
		size = 1
	}
	rng := rand.New(rand.NewSource(seed))
	newID := func() string {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// math/rand readers never fail
			panic(err)
		}
		return id.String()
	}

	cat := Catalog{}
	for i := 0; i < size; i++ {
		chapters := 20 + rng.Intn(480)
		updated := now.Add(-time.Duration(rng.Intn(72*60)) * time.Minute)
		novel := zeuzapi.Novel{
			ID:                newID(),
			Title:             fmt.Sprintf("The %s %s", titleFirst[rng.Intn(len(titleFirst))], titleLast[rng.Intn(len(titleLast))]),
			Author:            authors[rng.Intn(len(authors))],
			Cover:             fmt.Sprintf("https://cdn.zeuz.app/covers/%d.jpg", i+1),
			Status:            statuses[rng.Intn(len(statuses))],
			ChaptersCount:     chapters,
			Views:             int64(rng.Intn(2_000_000)),
			LastChapterUpdate: updated.UTC().Format(time.RFC3339),
			UpdatedAt:         updated.UTC().Format(time.RFC3339),
		}
		for n := chapters - 2; n <= chapters; n++ {
			novel.Chapters = append(novel.Chapters, zeuzapi.Chapter{Number: n, Title: fmt.Sprintf("Chapter %d", n)})
		}
		cat.Entries = append(cat.Entries, Entry{
			Novel:     novel,
			CreatedAt: now.Add(-time.Duration(i*36+rng.Intn(36)) * time.Hour),
			Featured:  i%4 == 0,
			Trend: map[string]float64{
				"day":   rng.Float64(),
				"week":  rng.Float64(),
				"month": rng.Float64(),
			},
		})
	}

	for i, e := range cat.Entries {
		if i >= 3 {
			break
		}
		last := e.Novel.Chapters[len(e.Novel.Chapters)-1]
		cat.History = append(cat.History, zeuzapi.HistoryEntry{
			NovelID:          e.Novel.ID,
			Title:            e.Novel.Title,
			Cover:            e.Novel.Cover,
			LastChapterID:    last.Number - 1,
			LastChapterTitle: fmt.Sprintf("Chapter %d", last.Number-1),
			Progress:         float64(10 + rng.Intn(85)),
		})
		cat.Notifications = append(cat.Notifications, zeuzapi.Notification{
			ID:                newID(),
			NovelID:           e.Novel.ID,
			Title:             e.Novel.Title,
			Cover:             e.Novel.Cover,
			UpdatedAt:         e.Novel.UpdatedAt,
			LastChapterNumber: last.Number,
		})
	}
	cat.Unread = len(cat.Notifications)
	return cat
}

// LoadFile reads a JSON catalog from fs.
func LoadFile(fs afero.Fs, path string) (Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cat.Entries) == 0 {
		return Catalog{}, fmt.Errorf("catalog %s has no entries", path)
	}
	return cat, nil
}

// SaveFile writes the catalog as indented JSON.
func SaveFile(fs afero.Fs, path string, cat Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Query returns novels for an /api/novels filter. ok is false for unknown
// filters.
func (c Catalog) Query(filter, timeRange string, limit int) ([]zeuzapi.Novel, bool) {
	entries := append([]Entry(nil), c.Entries...)
	switch filter {
	case zeuzapi.FilterFeatured:
		kept := entries[:0]
		for _, e := range entries {
			if e.Featured {
				kept = append(kept, e)
			}
		}
		entries = kept
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Novel.Views > entries[j].Novel.Views })
	case zeuzapi.FilterTrending:
		if !validRange(timeRange) {
			timeRange = "day"
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Trend[timeRange] > entries[j].Trend[timeRange] })
		if limit <= 0 {
			limit = 10
		}
	case zeuzapi.FilterLatestUpdates:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Novel.ParsedUpdatedAt().After(entries[j].Novel.ParsedUpdatedAt())
		})
	case zeuzapi.FilterLatestAdded:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
		if limit <= 0 {
			limit = 12
		}
	default:
		return nil, false
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	novels := make([]zeuzapi.Novel, 0, len(entries))
	for _, e := range entries {
		novels = append(novels, e.Novel)
	}
	return novels, true
}

func validRange(r string) bool {
	for _, known := range zeuzapi.TimeRanges {
		if r == known {
			return true
		}
	}
	return false
}
