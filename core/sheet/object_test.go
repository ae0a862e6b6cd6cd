package sheet

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"keys-monitor/core/reconcile"
	"keys-monitor/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sheetCSV = `Thrall-Draenor,8,Mechagon Workshop,2026-10-01 20:00:00,raid-pc,150
Jaina-Draenor,11,Theater of Pain,2026-10-01 20:05:00,laptop,200
"Odd, Name-Draenor",4
`

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestObjectStore_LoadAll(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "sheet.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(sheetCSV)), nil)

	snap, err := NewObjectStore(client, "bucket", "sheet.csv").LoadAll(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, snap.Len())
	row, ok := snap.Get("Jaina-Draenor")
	require.True(t, ok)
	assert.Equal(t, reconcile.Row{
		Unit: "Jaina-Draenor", KeyLevel: "11", LocationName: "Theater of Pain",
		LastUpdated: "2026-10-01 20:05:00", SourceID: "laptop", GeneratedAt: "200",
	}, row)

	short, ok := snap.Get("Odd, Name-Draenor")
	require.True(t, ok)
	assert.Equal(t, "4", short.KeyLevel)
	assert.Equal(t, "", short.GeneratedAt)
}

func TestObjectStore_LoadAll_KeepsRowWithoutUnit(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "sheet.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(",5,Note row\nThrall-Draenor,8\n")), nil)

	snap, err := NewObjectStore(client, "bucket", "sheet.csv").LoadAll(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, snap.Len())
	note, ok := snap.Get("")
	require.True(t, ok)
	assert.Equal(t, "Note row", note.LocationName)
}

func TestObjectStore_LoadAll_Missing(t *testing.T) {
	t.Run("On Get", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "sheet.csv", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchBucket"})

		snap, err := NewObjectStore(client, "bucket", "sheet.csv").LoadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, snap.Len())
	})

	t.Run("On Read", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "sheet.csv", mock.Anything).
			Return(io.NopCloser(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}), nil)

		snap, err := NewObjectStore(client, "bucket", "sheet.csv").LoadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, snap.Len())
	})
}

func TestObjectStore_LoadAll_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "sheet.csv", mock.Anything).
		Return(io.NopCloser(failingReader{err: errors.New("connection reset")}), nil)

	_, err := NewObjectStore(client, "bucket", "sheet.csv").LoadAll(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestObjectStore_ReplaceAll(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(false, nil).Once()
	client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil).Once()

	var written string
	client.On("PutObject", mock.Anything, "bucket", "sheet.csv", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			b, _ := io.ReadAll(args.Get(3).(io.Reader))
			written = string(b)
			assert.Equal(t, int64(len(b)), args.Get(4).(int64))
		}).
		Return(minio.UploadInfo{}, nil)

	store := NewObjectStore(client, "bucket", "sheet.csv")
	rows := []reconcile.Row{
		{Unit: "Thrall-Draenor", KeyLevel: "8", LocationName: "Mechagon Workshop", LastUpdated: "2026-10-01 20:00:00", SourceID: "raid-pc", GeneratedAt: "150"},
		{Unit: "Odd, Name-Draenor", KeyLevel: "4"},
	}

	require.NoError(t, store.ReplaceAll(context.Background(), rows))
	assert.Equal(t, "Thrall-Draenor,8,Mechagon Workshop,2026-10-01 20:00:00,raid-pc,150\n\"Odd, Name-Draenor\",4,,,,\n", written)

	// The bucket is only checked once.
	require.NoError(t, store.ReplaceAll(context.Background(), rows))
	client.AssertNumberOfCalls(t, "BucketExists", 1)
	client.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestObjectStore_ReplaceAll_Errors(t *testing.T) {
	t.Run("Bucket Check", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, errors.New("denied"))

		err := NewObjectStore(client, "bucket", "sheet.csv").ReplaceAll(context.Background(), nil)
		assert.Error(t, err)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Put", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
		client.On("PutObject", mock.Anything, "bucket", "sheet.csv", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("timeout"))

		err := NewObjectStore(client, "bucket", "sheet.csv").ReplaceAll(context.Background(), []reconcile.Row{{Unit: "A"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})
}

func TestObjectStore_RoundTrip(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)

	var stored []byte
	client.On("PutObject", mock.Anything, "bucket", "sheet.csv", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	store := NewObjectStore(client, "bucket", "sheet.csv")
	rows := []reconcile.Row{
		{Unit: "A", KeyLevel: "2", LocationName: "Operation: Floodgate", SourceID: "pc", GeneratedAt: "1"},
		{Unit: "B", KeyLevel: "7", LocationName: "The MOTHERLODE!!", SourceID: "pc", GeneratedAt: "2"},
	}
	require.NoError(t, store.ReplaceAll(context.Background(), rows))

	client.On("GetObject", mock.Anything, "bucket", "sheet.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(string(stored))), nil)

	snap, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, snap.Rows())
}
