// Package batch runs the intake pipeline: scan an inbox of vendor folders,
// parse each PDF with the vendor's rule set, persist and export the results,
// and write renamed single-invoice PDFs.
//
// The inbox layout names the vendor: every first-level subfolder holds the
// documents of one vendor, and the folder name is the vendor key.
//
//	inbox/
//	  Knife River/a.pdf
//	  farwest/b.pdf
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// Document is one PDF found in the inbox, tagged with the vendor key derived
// from its folder.
type Document struct {
	Path      string
	VendorKey string
}

// VendorKeyForFolder derives the dispatcher key from a vendor folder name.
// "Knife River" and "knife_river" address the same rule set.
func VendorKeyForFolder(name string) string {
	return extract.NormalizeKey(name)
}

// Scan walks the first-level vendor folders of inboxDir and returns every PDF
// inside them, in deterministic order. Files directly at the inbox root have
// no vendor and are ignored.
func Scan(inboxDir string) ([]Document, error) {
	entries, err := os.ReadDir(inboxDir)
	if err != nil {
		return nil, fmt.Errorf("read inbox %s: %w", inboxDir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		key := VendorKeyForFolder(entry.Name())
		vendorDir := filepath.Join(inboxDir, entry.Name())

		err := filepath.WalkDir(vendorDir, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				// Output folders nested under a vendor folder are not input.
				if strings.EqualFold(d.Name(), "processed") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".pdf") {
				docs = append(docs, Document{Path: path, VendorKey: key})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan vendor folder %s: %w", vendorDir, err)
		}
	}
	return docs, nil
}
