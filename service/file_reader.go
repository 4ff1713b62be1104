package service

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/courseguard/crosscheck/domain"
)

// FileReaderImpl implements the FileReader interface used by the CLI to turn
// directories of submissions into engine inputs.
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// languageExtensions maps a language to the file extensions it claims.
var languageExtensions = map[domain.Language][]string{
	domain.LanguagePython:     {".py"},
	domain.LanguageJavaScript: {".js", ".mjs", ".cjs"},
	domain.LanguageJava:       {".java"},
	domain.LanguageGo:         {".go"},
}

// CollectSourceFiles finds all source files for a language in the given paths.
func (f *FileReaderImpl) CollectSourceFiles(paths []string, language domain.Language, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, language, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else if f.matchesLanguage(path, language) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
	}

	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// DetectLanguage guesses the language of a file from its extension.
// Returns false when no front-end claims the extension.
func DetectLanguage(path string) (domain.Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for language, exts := range languageExtensions {
		for _, candidate := range exts {
			if ext == candidate {
				return language, true
			}
		}
	}
	return "", false
}

func (f *FileReaderImpl) collectFromDirectory(dir string, language domain.Language, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			// Skip hidden directories
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if f.matchesLanguage(path, language) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewFileNotFoundError(dir, err)
	}

	return files, nil
}

func (f *FileReaderImpl) matchesLanguage(path string, language domain.Language) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range languageExtensions[language] {
		if ext == candidate {
			return true
		}
	}
	return false
}

// shouldIncludeFile applies doublestar include/exclude patterns to the
// file's base name and full path; excludes win.
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}
	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchPattern(pattern, path) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, path string) bool {
	if matched, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && matched {
		return true
	}
	if matched, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && matched {
		return true
	}
	return false
}
