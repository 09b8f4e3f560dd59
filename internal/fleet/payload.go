package fleet

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/nerrad567/sign-fleet-core/internal/anthias"
)

// fallbackContentType is used when neither the caller nor the filename
// extension yields a MIME type.
const fallbackContentType = "application/octet-stream"

// urlAssetMimetype is what players expect for URL-sourced assets.
const urlAssetMimetype = "webpage"

// urlAssetExt is the literal ext value the player API expects for URL
// assets (it really is the string "string").
const urlAssetExt = "string"

// resolveContentType picks the effective content type for a file source:
// the declared type, else a guess from the filename extension, else the
// generic fallback.
func resolveContentType(file *FileSource) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	if guessed := mime.TypeByExtension(filepath.Ext(file.Filename)); guessed != "" {
		return guessed
	}
	return fallbackContentType
}

// classifyMimetype normalises a content type into the player API's asset
// mimetype vocabulary: "image" and "video" for the matching type families,
// everything else passed through verbatim.
func classifyMimetype(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return contentType
	}
}

// buildFilePayload assembles the create-asset body for a file asset.
// Ext and URI come from the upload step's response, never the caller.
func buildFilePayload(meta AssetMetadata, upload anthias.Upload, contentType string) anthias.CreationPayload {
	return anthias.CreationPayload{
		Ext:            upload.Ext,
		Name:           meta.Name,
		URI:            upload.URI,
		StartDate:      meta.StartDate,
		EndDate:        meta.EndDate,
		Duration:       meta.Duration,
		Mimetype:       classifyMimetype(contentType),
		IsEnabled:      true,
		IsProcessing:   true,
		NoCache:        true,
		PlayOrder:      0,
		SkipAssetCheck: true,
	}
}

// buildURLPayload assembles the create-asset body for a URL asset. The
// same payload is reused verbatim for every selected player.
func buildURLPayload(meta AssetMetadata) anthias.CreationPayload {
	return anthias.CreationPayload{
		Ext:            urlAssetExt,
		Name:           meta.Name,
		URI:            meta.URL,
		StartDate:      meta.StartDate,
		EndDate:        meta.EndDate,
		Duration:       meta.Duration,
		Mimetype:       urlAssetMimetype,
		IsEnabled:      true,
		IsProcessing:   true,
		NoCache:        true,
		PlayOrder:      0,
		SkipAssetCheck: true,
	}
}
