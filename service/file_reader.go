package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

const archiveExt = ".zip"

// FileReaderImpl implements domain.SourceReader over the local filesystem
type FileReaderImpl struct {
	registry          *parser.Registry
	maxInputBytes     int64
	maxArchiveEntries int
}

// NewFileReader creates a new file reader service. Non-positive limits
// fall back to the defaults.
func NewFileReader(registry *parser.Registry, maxInputBytes int64, maxArchiveEntries int) *FileReaderImpl {
	if maxInputBytes < 0 {
		maxInputBytes = domain.DefaultMaxInputBytes
	}
	if maxArchiveEntries <= 0 {
		maxArchiveEntries = domain.DefaultMaxArchiveEntries
	}
	return &FileReaderImpl{
		registry:          registry,
		maxInputBytes:     maxInputBytes,
		maxArchiveEntries: maxArchiveEntries,
	}
}

// CollectSourceFiles finds every supported source file in the given paths
func (f *FileReaderImpl) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else {
			// explicitly named files skip the include filter
			if f.IsValidSourceFile(path) && !matchesAny(excludePatterns, path, filepath.Base(path)) {
				files = append(files, path)
			}
		}
	}

	return files, nil
}

// ReadSource reads a file, or a zip archive whose supported members are
// joined with newlines, into a SourceUnit. An empty language is detected
// from the file extension.
func (f *FileReaderImpl) ReadSource(path string, language domain.Language) (domain.SourceUnit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceUnit{}, domain.NewFileNotFoundError(path, err)
	}
	if info.IsDir() {
		return domain.SourceUnit{}, domain.NewInvalidInputError(fmt.Sprintf("%s is a directory", path), nil)
	}

	// archives are capped on their uncompressed members instead
	if !isArchive(path) {
		if err := f.checkSize(path, info.Size()); err != nil {
			return domain.SourceUnit{}, err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceUnit{}, domain.NewFileNotFoundError(path, err)
	}
	return f.UnitFromBytes(path, content, language)
}

// UnitFromBytes builds a SourceUnit from in-memory content such as an upload.
// A name ending in .zip is read as an archive.
func (f *FileReaderImpl) UnitFromBytes(name string, content []byte, language domain.Language) (domain.SourceUnit, error) {
	if isArchive(name) {
		return f.ReadArchive(name, bytes.NewReader(content), int64(len(content)), language)
	}

	if err := f.checkSize(name, int64(len(content))); err != nil {
		return domain.SourceUnit{}, err
	}
	lang, err := f.resolveLanguage(name, language)
	if err != nil {
		return domain.SourceUnit{}, err
	}
	return domain.SourceUnit{Name: name, Text: string(content), Language: lang}, nil
}

// ReadArchive joins the archive members of one language with "\n", in
// archive order. Without an explicit language the first supported member
// decides it.
func (f *FileReaderImpl) ReadArchive(name string, r io.ReaderAt, size int64, language domain.Language) (domain.SourceUnit, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return domain.SourceUnit{}, domain.NewInvalidInputError(fmt.Sprintf("cannot open archive %s", name), err)
	}

	lang := language
	if lang != "" {
		if _, err := f.registry.Lookup(lang); err != nil {
			return domain.SourceUnit{}, err
		}
	}

	var (
		parts   []string
		total   int64
		entries int
	)
	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		memberLang, ok := f.registry.DetectLanguage(member.Name)
		if !ok {
			continue
		}
		if lang == "" {
			lang = memberLang
		}
		if memberLang != lang {
			continue
		}

		entries++
		if entries > f.maxArchiveEntries {
			return domain.SourceUnit{}, domain.NewInvalidInputError(
				fmt.Sprintf("archive %s has more than %d source files", name, f.maxArchiveEntries), nil)
		}

		text, err := f.readMember(name, member, total)
		if err != nil {
			return domain.SourceUnit{}, err
		}
		total += int64(len(text))
		parts = append(parts, text)
	}

	if lang == "" {
		return domain.SourceUnit{}, domain.NewInvalidInputError(
			fmt.Sprintf("archive %s contains no supported source files", name), nil)
	}

	return domain.SourceUnit{Name: name, Text: strings.Join(parts, "\n"), Language: lang}, nil
}

func (f *FileReaderImpl) readMember(archive string, member *zip.File, readSoFar int64) (string, error) {
	rc, err := member.Open()
	if err != nil {
		return "", domain.NewInvalidInputError(fmt.Sprintf("cannot read %s in %s", member.Name, archive), err)
	}
	defer rc.Close()

	var reader io.Reader = rc
	if f.maxInputBytes > 0 {
		// one byte past the limit is enough to detect an overflow
		reader = io.LimitReader(rc, f.maxInputBytes-readSoFar+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.NewInvalidInputError(fmt.Sprintf("cannot read %s in %s", member.Name, archive), err)
	}
	if err := f.checkSize(archive, readSoFar+int64(len(data))); err != nil {
		return "", err
	}
	return string(data), nil
}

// IsValidSourceFile checks if a file has a supported extension or is a zip archive
func (f *FileReaderImpl) IsValidSourceFile(path string) bool {
	if isArchive(path) {
		return true
	}
	_, ok := f.registry.DetectLanguage(path)
	return ok
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) resolveLanguage(name string, language domain.Language) (domain.Language, error) {
	if language != "" {
		if _, err := f.registry.Lookup(language); err != nil {
			return "", err
		}
		return language, nil
	}
	lang, ok := f.registry.DetectLanguage(name)
	if !ok {
		return "", domain.NewInvalidInputError(
			fmt.Sprintf("cannot detect the language of %s; pass --language", name), nil)
	}
	return lang, nil
}

func (f *FileReaderImpl) checkSize(name string, size int64) error {
	if f.maxInputBytes > 0 && size > f.maxInputBytes {
		return domain.NewInputTooLargeError(name, size, f.maxInputBytes)
	}
	return nil
}

// collectFromDirectory collects supported files below dirPath. Patterns are
// matched against the slash-separated path relative to dirPath.
func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			return nil
		}

		if d.IsDir() && path != dirPath {
			if !recursive || strings.HasPrefix(d.Name(), ".") || f.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		if !f.IsValidSourceFile(path) {
			return nil
		}

		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(excludePatterns, rel, d.Name()) {
			return nil
		}
		if len(includePatterns) > 0 && !matchesAny(includePatterns, rel, d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	skipDirs := []string{
		"node_modules",
		"vendor",
		"target",
		"build",
		"dist",
		"bin",
		"obj",
		"__pycache__",
		"venv",
		"*.egg-info",
	}

	dirLower := strings.ToLower(dirName)
	for _, skipDir := range skipDirs {
		if matched, _ := doublestar.Match(skipDir, dirLower); matched {
			return true
		}
	}
	return false
}

func matchesAny(patterns []string, rel, base string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

func isArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), archiveExt)
}
