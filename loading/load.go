package loading

import (
	"fmt"
	"log"
	"os"

	"nlutools/traindata/traindata"
)

// FileFormat reports the overall format of the resource at path using the
// default lister and guesser.
func FileFormat(path string) (traindata.FormatTag, error) {
	sniffer, err := traindata.NewSniffer(DefaultLister{}, DefaultGuesser{})
	if err != nil {
		return "", err
	}
	return sniffer.FileFormat(path)
}

// Load reads every training data file behind path and merges them into a
// single set. Synonym conflicts between files are reported through logger.
func Load(path string, logger *log.Logger) (*traindata.TrainingData, error) {
	files, err := DefaultLister{}.ListFiles(path)
	if err != nil {
		return nil, err
	}
	parts := make([]*traindata.TrainingData, 0, len(files))
	for _, file := range files {
		part, err := ReadFile(file, logger)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return traindata.NewTrainingData(nil, nil, nil, nil), nil
	}
	return parts[0].Merge(logger, parts[1:]...), nil
}

// ReadFile loads a single training data file, guessing its format from the
// content. Recognized dialects without a bundled reader are an error.
func ReadFile(path string, logger *log.Logger) (*traindata.TrainingData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch tag := guessContent(data, path); tag {
	case traindata.FormatMarkdown:
		return ReadMarkdown(data, logger)
	case traindata.FormatRasa:
		return ReadRasaJSON(data, logger)
	case traindata.FormatUnknown:
		return nil, fmt.Errorf("could not guess the training data format of %s", path)
	default:
		return nil, fmt.Errorf("no reader for %s data in %s", tag, path)
	}
}
