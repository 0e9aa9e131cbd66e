// SPDX-License-Identifier: MPL-2.0

package freshness

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) (Destination, Candidate)
		want  Report
	}{
		{
			name: "everything fresh with sources",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "binary")
				srcSrc := writeFile(t, filepath.Join(dir, "src-src.jar"), "sources")
				return Destination{
						BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "binary"),
						SourcesPath:    writeFile(t, filepath.Join(dir, "src.jar"), "sources"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy/>"),
					}, Candidate{
						BinaryPath:  binSrc,
						SourcesPath: srcSrc,
						Descriptor:  "<ivy/>",
					}
			},
			want: Report{Binary: true, Sources: true, Descriptor: true},
		},
		{
			name: "missing binary destination",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "binary")
				return Destination{
						BinaryPath:     filepath.Join(dir, "absent.jar"),
						SourcesPath:    filepath.Join(dir, "src.jar"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy/>"),
					}, Candidate{
						BinaryPath: binSrc,
						Descriptor: "<ivy/>",
					}
			},
			want: Report{Binary: false, Sources: true, Descriptor: true},
		},
		{
			name: "binary content differs",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "binary v2")
				return Destination{
						BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "binary v1"),
						SourcesPath:    filepath.Join(dir, "src.jar"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy/>"),
					}, Candidate{
						BinaryPath: binSrc,
						Descriptor: "<ivy/>",
					}
			},
			want: Report{Binary: false, Sources: true, Descriptor: true},
		},
		{
			name: "same length different bytes",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "aaaa")
				return Destination{
						BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "aaab"),
						SourcesPath:    filepath.Join(dir, "src.jar"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy/>"),
					}, Candidate{
						BinaryPath: binSrc,
						Descriptor: "<ivy/>",
					}
			},
			want: Report{Binary: false, Sources: true, Descriptor: true},
		},
		{
			name: "descriptor stale",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "binary")
				return Destination{
						BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "binary"),
						SourcesPath:    filepath.Join(dir, "src.jar"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy old/>"),
					}, Candidate{
						BinaryPath: binSrc,
						Descriptor: "<ivy/>",
					}
			},
			want: Report{Binary: true, Sources: true, Descriptor: false},
		},
		{
			name: "no sources candidate but destination exists",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "binary")
				return Destination{
						BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "binary"),
						SourcesPath:    writeFile(t, filepath.Join(dir, "src.jar"), "stale sources"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy/>"),
					}, Candidate{
						BinaryPath: binSrc,
						Descriptor: "<ivy/>",
					}
			},
			want: Report{Binary: true, Sources: false, Descriptor: true},
		},
		{
			name: "sources candidate but destination missing",
			setup: func(t *testing.T, dir string) (Destination, Candidate) {
				binSrc := writeFile(t, filepath.Join(dir, "bin-src.jar"), "binary")
				srcSrc := writeFile(t, filepath.Join(dir, "src-src.jar"), "sources")
				return Destination{
						BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "binary"),
						SourcesPath:    filepath.Join(dir, "src.jar"),
						DescriptorPath: writeFile(t, filepath.Join(dir, "ivy.xml"), "<ivy/>"),
					}, Candidate{
						BinaryPath:  binSrc,
						SourcesPath: srcSrc,
						Descriptor:  "<ivy/>",
					}
			},
			want: Report{Binary: true, Sources: false, Descriptor: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dest, cand := tt.setup(t, t.TempDir())

			got, err := Check(dest, cand)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Check() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReportFresh(t *testing.T) {
	t.Parallel()

	if !(Report{Binary: true, Sources: true, Descriptor: true}).Fresh() {
		t.Error("all-true report should be fresh")
	}
	for _, r := range []Report{
		{Binary: false, Sources: true, Descriptor: true},
		{Binary: true, Sources: false, Descriptor: true},
		{Binary: true, Sources: true, Descriptor: false},
	} {
		if r.Fresh() {
			t.Errorf("report %+v should not be fresh", r)
		}
	}
}

func TestCheckMissingCandidateBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := Destination{
		BinaryPath:     writeFile(t, filepath.Join(dir, "bin.jar"), "binary"),
		SourcesPath:    filepath.Join(dir, "src.jar"),
		DescriptorPath: filepath.Join(dir, "ivy.xml"),
	}
	cand := Candidate{BinaryPath: filepath.Join(dir, "absent.jar")}

	if _, err := Check(dest, cand); err == nil {
		t.Error("Check() with missing candidate binary succeeded, want error")
	}
}
