package purge

import (
	"io/fs"
	"path/filepath"

	"github.com/aatumaykin/purgetemp/internal/activity"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/stage"
)

// Reporter sends the files of a stage folder to the activity sink before the
// folder is purged or moved. Files beyond the threshold are reported as one
// aggregate entry.
type Reporter struct {
	sink      activity.Sink
	threshold int
}

// NewReporter creates a reporter. threshold -1 reports every file, 0 none individually.
func NewReporter(sink activity.Sink, threshold int) *Reporter {
	if sink == nil {
		sink = activity.Discard{}
	}
	return &Reporter{sink: sink, threshold: threshold}
}

// ReportFolderContents reports every file below current, which must be one of
// folders. The oldest folder is reported as purged, any other as moved to the
// next folder in the chain. It returns the number of files found.
func (r *Reporter) ReportFolderContents(folders stage.List, current string) (int, error) {
	index := folders.IndexOf(current)
	if index < 0 {
		return 0, errcode.New(errcode.InvalidArguments, "folder %q is not a stage folder", current)
	}

	files, err := listFiles(current)
	if err != nil {
		return 0, errcode.Wrap(err, errcode.UnknownError, "failed to list %q", current)
	}

	purged := index == len(folders)-1
	var target string
	if !purged {
		target = folders[index+1]
	}

	individual := len(files)
	if r.threshold >= 0 && r.threshold < individual {
		individual = r.threshold
	}
	for _, file := range files[:individual] {
		if purged {
			r.sink.ReportPurge(current, file)
		} else {
			r.sink.ReportMove(current, target, file)
		}
	}

	if skipped := len(files) - individual; skipped > 0 {
		allSkipped := r.threshold == 0
		if purged {
			r.sink.ReportSkippedPurge(current, skipped, allSkipped)
		} else {
			r.sink.ReportSkippedMove(current, target, skipped, allSkipped)
		}
	}

	return len(files), nil
}

// listFiles returns the paths of all non-directory entries below root,
// relative to root, in lexical order.
func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}
