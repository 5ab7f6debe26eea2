// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Crash-safe file writing (temp file + rename)
//   - Filename sanitization
//   - Directory creation
//   - Image format conversion and icon fitting
//
// # File Operations
//
//	// Write a file so readers never see a partial payload
//	err := ioutils.WriteFileAtomic(ctx, "/path/to/coverart/hades.jpg", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// Failures are reported as *StorageError naming the failed step.
//
// # Image Processing
//
// The ImageService normalises downloaded art:
//
//	svc := ioutils.NewImageService()
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, webpData)
//
//	// Fit an icon into 128x128 PNG
//	icon, _ := svc.FitPNG(ctx, data, ioutils.IconSize)
package ioutils
