package dataset

import "fmt"

// DatasetLoadError reports a dataset that could not be fetched or read.
type DatasetLoadError struct {
	Source string
	Status int
	Err    error
}

func (e *DatasetLoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("Gagal memuat dataset (%d)", e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("Gagal memuat dataset: %v", e.Err)
	}
	return "Gagal memuat dataset"
}

func (e *DatasetLoadError) Unwrap() error {
	return e.Err
}
