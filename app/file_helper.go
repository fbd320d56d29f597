package app

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file operation utilities for batch input collection
type FileHelper struct {
	extensions []string
}

// NewFileHelper creates a FileHelper that accepts the given output file
// extensions. Extensions match case-insensitively.
func NewFileHelper(extensions []string) *FileHelper {
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md", ".json"}
	}
	return &FileHelper{extensions: extensions}
}

// CollectOutputFiles collects candidate output files from paths. Directory
// inputs honor the directory's .gitignore in addition to excludePatterns.
func (h *FileHelper) CollectOutputFiles(paths []string, recursive bool, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			// Explicitly named files bypass extension filtering.
			if !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		collected, err := h.collectFromDirectory(path, recursive, excludePatterns)
		if err != nil {
			return nil, err
		}
		files = append(files, collected...)
	}

	return files, nil
}

func (h *FileHelper) collectFromDirectory(dir string, recursive bool, excludePatterns []string) ([]string, error) {
	ignorer := h.loadGitignore(dir)

	var files []string

	if recursive {
		err := filepath.Walk(dir, func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(dir, filePath)
			if relErr != nil {
				rel = filePath
			}

			if info.IsDir() {
				if filePath == dir {
					return nil
				}
				dirName := filepath.Base(filePath)
				for _, pattern := range excludePatterns {
					if pattern == dirName {
						return filepath.SkipDir
					}
					if matched, _ := filepath.Match(pattern, dirName); matched {
						return filepath.SkipDir
					}
				}
				if ignorer != nil && ignorer.MatchesPath(rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}

			if ignorer != nil && ignorer.MatchesPath(rel) {
				return nil
			}
			if h.hasOutputExtension(filePath) && !h.isExcluded(filePath, excludePatterns) {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filePath := filepath.Join(dir, entry.Name())
		if ignorer != nil && ignorer.MatchesPath(entry.Name()) {
			continue
		}
		if h.hasOutputExtension(filePath) && !h.isExcluded(filePath, excludePatterns) {
			files = append(files, filePath)
		}
	}
	return files, nil
}

// loadGitignore compiles the directory's .gitignore if one exists
func (h *FileHelper) loadGitignore(dir string) *gitignore.GitIgnore {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ignorer, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return ignorer
}

// FileExists checks if a regular file exists at path
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (h *FileHelper) hasOutputExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range h.extensions {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}

func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
