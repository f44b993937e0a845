package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const maxDriveFileBytes = 20 << 20

// DriveService downloads Drive-hosted images
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance.
// Credentials come from a Service Account JSON file path or its raw JSON content.
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string) (*DriveService, error) {
	var opt option.ClientOption
	switch {
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	default:
		return nil, fmt.Errorf("no drive credentials configured")
	}

	client, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// DownloadFile downloads the content of a Drive file
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveFileBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	return data, nil
}

// DriveFileID extracts the file id of a Google Drive link such as
// https://drive.google.com/uc?id=ID or https://drive.google.com/file/d/ID/view
func DriveFileID(src string) (string, bool) {
	u, err := url.Parse(src)
	if err != nil || u.Host != "drive.google.com" {
		return "", false
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "d" && parts[i+1] != "" {
			return parts[i+1], true
		}
	}
	return "", false
}
