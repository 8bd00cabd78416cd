package app

import "github.com/ludo-technologies/codesim/domain"

// ResolveFilePaths resolves the inputs of a batch run.
// If every path is already an existing source file and nothing is excluded,
// the paths are returned unchanged. Otherwise supported files are collected
// from the paths using the given filters.
//
// Parameters:
//   - reader: The source reader used for file system access
//   - paths: The input paths to resolve (files, directories or zip archives)
//   - recursive: Whether to descend into subdirectories
//   - includePatterns: Glob patterns for files to include
//   - excludePatterns: Glob patterns for files to exclude
//
// Returns:
//   - []string: List of resolved source file paths
//   - error: Any error encountered during resolution
func ResolveFilePaths(
	reader domain.SourceReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := len(excludePatterns) == 0
	for _, path := range paths {
		if !allFiles {
			break
		}
		if !reader.IsValidSourceFile(path) {
			allFiles = false
			break
		}

		// FileExists returns true only for files, not directories
		exists, err := reader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	files, err := reader.CollectSourceFiles(
		paths,
		recursive,
		includePatterns,
		excludePatterns,
	)
	if err != nil {
		return nil, err
	}

	return files, nil
}
