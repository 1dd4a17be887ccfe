// Package linkcheck verifies that internal references in a rendered site
// resolve within its own output tree.
package linkcheck

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// BrokenLink is one unresolvable internal reference.
type BrokenLink struct {
	Page   string // page containing the reference, relative to the site root
	Target string // the href/src as written
}

// Result summarizes a site scan.
type Result struct {
	PagesScanned int
	LinksChecked int
	Broken       []BrokenLink
}

// CheckSite parses every HTML page under siteDir and verifies that internal
// hrefs and srcs point at files the build produced. External URLs are not
// fetched; the check is purely structural.
func CheckSite(siteDir string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(siteDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(siteDir, p)
		if err != nil {
			return err
		}
		result.PagesScanned++
		return checkPage(siteDir, filepath.ToSlash(rel), p, result)
	})
	if err != nil {
		return nil, fmt.Errorf("scan site %s: %w", siteDir, err)
	}

	sort.Slice(result.Broken, func(i, j int) bool {
		if result.Broken[i].Page != result.Broken[j].Page {
			return result.Broken[i].Page < result.Broken[j].Page
		}
		return result.Broken[i].Target < result.Broken[j].Target
	})
	return result, nil
}

func checkPage(siteDir, relPage, absPage string, result *Result) error {
	f, err := os.Open(absPage)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", relPage, err)
	}

	for _, ref := range collectRefs(doc) {
		target, internal := normalizeRef(ref, relPage)
		if !internal {
			continue
		}
		result.LinksChecked++
		if !targetExists(siteDir, target) {
			result.Broken = append(result.Broken, BrokenLink{Page: relPage, Target: ref})
		}
	}
	return nil
}

// collectRefs walks the DOM for href and src attributes.
func collectRefs(doc *html.Node) []string {
	var refs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "href" || attr.Key == "src" {
					refs = append(refs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs
}

// normalizeRef resolves ref against the page's directory and reports whether
// it is an internal site path.
func normalizeRef(ref, relPage string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}

	target := u.Path
	if target == "" {
		return "", false
	}
	if !strings.HasPrefix(target, "/") {
		target = path.Join("/", path.Dir(relPage), target)
	}
	return strings.TrimPrefix(path.Clean(target), "/"), true
}

// targetExists accepts a file, or a directory holding an index.html
// (pretty-URL pages), or the path with index.html appended.
func targetExists(siteDir, target string) bool {
	abs := filepath.Join(siteDir, filepath.FromSlash(target))
	info, err := os.Stat(abs)
	if err == nil {
		if !info.IsDir() {
			return true
		}
		_, err = os.Stat(filepath.Join(abs, "index.html"))
		return err == nil
	}
	if strings.HasSuffix(target, "/") || path.Ext(target) == "" {
		_, err = os.Stat(filepath.Join(abs, "index.html"))
		return err == nil
	}
	return false
}
