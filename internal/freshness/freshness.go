// SPDX-License-Identifier: MPL-2.0

// Package freshness decides whether a publish would change anything on
// disk, so unchanged modules can skip the write entirely.
//
// All comparisons are exact byte comparisons over streamed file content.
// Size or hash shortcuts are deliberately avoided: exactness, not speed,
// is the requirement, and the archives involved are developer-build-sized.
package freshness

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

type (
	// Candidate describes what a publish is about to write. SourcesPath
	// is empty when no sources artifact is supplied.
	Candidate struct {
		BinaryPath  string
		SourcesPath string
		Descriptor  string
	}

	// Destination holds the three paths a publish targets inside the
	// version directory.
	Destination struct {
		BinaryPath     string
		SourcesPath    string
		DescriptorPath string
	}

	// Report carries the per-artifact comparison results.
	Report struct {
		Binary     bool
		Sources    bool
		Descriptor bool
	}
)

// Fresh reports whether every artifact already matches the destination.
// Any single staleness forces a full republish of all three artifacts.
func (r Report) Fresh() bool {
	return r.Binary && r.Sources && r.Descriptor
}

// Check compares the candidate artifacts against the destination files.
//
// The binary and descriptor are fresh when their destination exists as a
// regular file with identical bytes. Sources are fresh when either no
// candidate is supplied and the destination is absent, or a candidate is
// supplied and the destination matches it byte for byte.
func Check(dest Destination, cand Candidate) (Report, error) {
	var report Report
	var err error

	report.Binary, err = fileMatchesFile(dest.BinaryPath, cand.BinaryPath)
	if err != nil {
		return Report{}, fmt.Errorf("failed to compare binary artifact: %w", err)
	}

	report.Descriptor, err = fileMatchesBytes(dest.DescriptorPath, []byte(cand.Descriptor))
	if err != nil {
		return Report{}, fmt.Errorf("failed to compare descriptor: %w", err)
	}

	if cand.SourcesPath == "" {
		_, statErr := os.Stat(dest.SourcesPath)
		switch {
		case statErr == nil:
			report.Sources = false
		case os.IsNotExist(statErr):
			report.Sources = true
		default:
			return Report{}, fmt.Errorf("failed to stat sources destination: %w", statErr)
		}
	} else {
		report.Sources, err = fileMatchesFile(dest.SourcesPath, cand.SourcesPath)
		if err != nil {
			return Report{}, fmt.Errorf("failed to compare sources artifact: %w", err)
		}
	}

	return report, nil
}

// fileMatchesFile reports whether dst exists as a regular file with the
// same bytes as src. A missing dst means "no match"; a missing src is an
// error, since the candidate must exist by the time the check runs.
func fileMatchesFile(dst, src string) (bool, error) {
	info, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	dstFile, err := os.Open(dst)
	if err != nil {
		return false, err
	}
	defer dstFile.Close()

	srcFile, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer srcFile.Close()

	return readersEqual(dstFile, srcFile)
}

// fileMatchesBytes reports whether dst exists as a regular file whose
// content equals want.
func fileMatchesBytes(dst string, want []byte) (bool, error) {
	info, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	f, err := os.Open(dst)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return readersEqual(f, bytes.NewReader(want))
}

// readersEqual streams both readers and compares them byte for byte.
func readersEqual(a, b io.Reader) (bool, error) {
	ra := bufio.NewReader(a)
	rb := bufio.NewReader(b)

	for {
		byteA, errA := ra.ReadByte()
		byteB, errB := rb.ReadByte()

		if errA == io.EOF && errB == io.EOF {
			return true, nil
		}
		if errA == io.EOF || errB == io.EOF {
			return false, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
		if byteA != byteB {
			return false, nil
		}
	}
}
