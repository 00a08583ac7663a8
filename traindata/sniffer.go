package traindata

import (
	"errors"
	"fmt"
	"io/fs"
)

// FileLister enumerates the training data files behind a resource path.
// Implementations report missing resources with *ResourceNotFoundError.
type FileLister interface {
	ListFiles(path string) ([]string, error)
}

// FormatGuesser inspects a single file and reports its format tag.
type FormatGuesser interface {
	GuessFormat(path string) (FormatTag, error)
}

// Sniffer determines the overall format of a training data resource by
// combining a file lister with a per-file format guesser.
type Sniffer struct {
	lister  FileLister
	guesser FormatGuesser
}

// NewSniffer constructs a sniffer with the given collaborators.
func NewSniffer(lister FileLister, guesser FormatGuesser) (*Sniffer, error) {
	if lister == nil {
		return nil, errors.New("file lister is required")
	}
	if guesser == nil {
		return nil, errors.New("format guesser is required")
	}
	return &Sniffer{lister: lister, guesser: guesser}, nil
}

// FileFormat reports the format of the resource at path. The resource is
// markdown only when every contained file is markdown; anything else,
// including a resource without files, is reported as JSON.
func (s *Sniffer) FileFormat(path string) (FormatTag, error) {
	if path == "" {
		return "", &ResourceNotFoundError{Path: path}
	}
	files, err := s.lister.ListFiles(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			var notFound *ResourceNotFoundError
			if errors.As(err, &notFound) {
				return "", err
			}
			return "", &ResourceNotFoundError{Path: path}
		}
		return "", fmt.Errorf("list training files: %w", err)
	}
	tags := make([]FormatTag, 0, len(files))
	for _, file := range files {
		tag, err := s.guesser.GuessFormat(file)
		if err != nil {
			return "", fmt.Errorf("guess format of %s: %w", file, err)
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return FormatJSON, nil
	}
	if tags[0] == FormatMarkdown {
		uniform := true
		for _, tag := range tags[1:] {
			if tag != tags[0] {
				uniform = false
				break
			}
		}
		if uniform {
			return FormatMarkdown, nil
		}
	}
	return FormatJSON, nil
}
