package cache

import (
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// SaveRowRecord is the flattened, parquet-storable form of one path-table
// row's derived saves - adapted from the teacher's GameRecord, swapped from
// Shogi move evaluations to PC save candidates.
type SaveRowRecord struct {
	Queue        string   `parquet:"name=queue, type=BYTE_ARRAY, convertedtype=UTF8"`
	Solveable    bool     `parquet:"name=solveable, type=BOOLEAN"`
	Saves        []string `parquet:"name=saves, type=LIST, valuetype=BYTE_ARRAY, valueconvertedtype=UTF8"`
	FumenCount   int32    `parquet:"name=fumen_count, type=INT32"`
}

// SaveRowCache persists derived SaveRowRecords under dir, one parquet file
// per Key, so a repeated percent/filter run against the same path file and
// geometry skips re-deriving every row's saves.
type SaveRowCache struct {
	dir string
}

// NewSaveRowCache prepares a cache rooted at dir, creating it if needed.
func NewSaveRowCache(dir string) (*SaveRowCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SaveRowCache{dir: dir}, nil
}

func (c *SaveRowCache) path(key Key) string {
	return filepath.Join(c.dir, key.String()+".parquet")
}

// Has reports whether a cache entry already exists for key.
func (c *SaveRowCache) Has(key Key) bool {
	_, err := os.Stat(c.path(key))
	return err == nil
}

// Write persists records for key, overwriting any existing entry.
func (c *SaveRowCache) Write(key Key, records []SaveRowRecord) error {
	fileWriter, err := local.NewLocalFileWriter(c.path(key))
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(SaveRowRecord), 1)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		if err := parquetWriter.Write(record); err != nil {
			return err
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}
	return fileWriter.Close()
}

// Read loads every cached SaveRowRecord for key.
func (c *SaveRowCache) Read(key Key) ([]SaveRowRecord, error) {
	fileReader, err := local.NewLocalFileReader(c.path(key))
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(SaveRowRecord), 1)
	if err != nil {
		return nil, err
	}
	defer parquetReader.ReadStop()

	total := int(parquetReader.GetNumRows())
	records := make([]SaveRowRecord, total)
	if total > 0 {
		if err := parquetReader.Read(&records); err != nil {
			return nil, err
		}
	}
	return records, nil
}
