// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"mime"
	"time"
)

// ImageExtension picks a file extension for an image content type.
// Unknown or malformed types fall back to ".png", the backend's format.
func ImageExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".png"
	}
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// ScreenshotFileName names a downloaded screenshot taken at t.
func ScreenshotFileName(t time.Time, contentType string) string {
	return "screenshot_" + t.Format("20060102_150405") + ImageExtension(contentType)
}
