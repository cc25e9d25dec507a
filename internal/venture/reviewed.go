package venture

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// Reviewed is the content of an exclude file: startups already shown to the user.
type Reviewed struct {
	Items []*ReviewedStartup
}

type ReviewedStartup struct {
	Name           string
	Website        string
	VCFirm         string
	Recommendation string
	ReviewedAt     time.Time
}

// ReviewedFromFile reads an exclude file. A missing or empty file yields an empty list.
func ReviewedFromFile(path string) (*Reviewed, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Reviewed{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Reviewed{}, nil
	}

	var reviewed Reviewed
	if err := json.NewDecoder(file).Decode(&reviewed); err != nil {
		return nil, err
	}
	return &reviewed, nil
}

func (r *Reviewed) Append(other *Reviewed) {
	r.Items = append(r.Items, other.Items...)
}

func (r *Reviewed) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		names = append(names, item.Name)
	}
	return names
}

func (r *Reviewed) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
