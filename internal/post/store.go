package post

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store holds every parsed post from a content directory.
type Store struct {
	Dir   string
	Posts []*Post
}

// Duplicate is a pair of posts sharing both title and date.
type Duplicate struct {
	Title string
	Date  time.Time
	Paths []string
}

// IsPostFile reports whether path names a Markdown content file.
func IsPostFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// LoadStore walks contentDir and parses every Markdown file into a post.
// Hidden files and directories are skipped, as are section index files
// (_index.md), which carry list-page metadata rather than post metadata.
func LoadStore(contentDir string) (*Store, error) {
	store := &Store{Dir: contentDir}

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsPostFile(path) || strings.HasPrefix(d.Name(), "_index.") {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		p, err := Load(path, rel)
		if err != nil {
			return err
		}
		store.Posts = append(store.Posts, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load content store %s: %w", contentDir, err)
	}

	store.sortByDateDesc()
	return store, nil
}

// Published returns the posts a production build includes, newest first.
func (s *Store) Published(now time.Time) []*Post {
	var out []*Post
	for _, p := range s.Posts {
		if p.Published(now) {
			out = append(out, p)
		}
	}
	return out
}

// Drafts returns the draft-flagged posts.
func (s *Store) Drafts() []*Post {
	var out []*Post
	for _, p := range s.Posts {
		if p.Meta.Draft {
			out = append(out, p)
		}
	}
	return out
}

// TagIndex maps each tag to the posts carrying it, each list newest first.
func (s *Store) TagIndex() map[string][]*Post {
	idx := make(map[string][]*Post)
	for _, p := range s.Posts {
		for _, tag := range p.Meta.Tags {
			idx[tag] = append(idx[tag], p)
		}
	}
	return idx
}

// FindDuplicates reports groups of posts sharing both title and date.
// Nothing in the store prevents these; builds still succeed, so callers
// surface them as warnings.
func (s *Store) FindDuplicates() []Duplicate {
	type key struct {
		title string
		date  time.Time
	}
	groups := make(map[key][]string)
	for _, p := range s.Posts {
		k := key{title: p.Meta.Title, date: p.Meta.Date.Time}
		groups[k] = append(groups[k], p.Path)
	}

	var dups []Duplicate
	for k, paths := range groups {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		dups = append(dups, Duplicate{Title: k.title, Date: k.date, Paths: paths})
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Paths[0] < dups[j].Paths[0] })
	return dups
}

func (s *Store) sortByDateDesc() {
	sort.SliceStable(s.Posts, func(i, j int) bool {
		di, dj := s.Posts[i].Meta.Date, s.Posts[j].Meta.Date
		if !di.Equal(dj.Time) {
			return di.After(dj.Time)
		}
		return s.Posts[i].Path < s.Posts[j].Path
	})
}
