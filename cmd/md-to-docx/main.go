// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mdtodocx "github.com/sstrelsov/ia-ibm-template"
	"github.com/sstrelsov/ia-ibm-template/style"
)

var version = "dev"

func main() {
	var (
		stylePath   string
		output      string
		extension   string
		mimeType    string
		charset     string
		showVersion bool
	)

	flag.StringVar(&stylePath, "style", "", "Style specification YAML file (required)")
	flag.StringVar(&output, "o", "", "Output .docx file")
	flag.StringVar(&output, "output", "", "Output .docx file")
	flag.StringVar(&extension, "x", "", "File extension hint (for stdin input)")
	flag.StringVar(&extension, "extension", "", "File extension hint (for stdin input)")
	flag.StringVar(&mimeType, "m", "", "MIME type hint")
	flag.StringVar(&mimeType, "mime-type", "", "MIME type hint")
	flag.StringVar(&charset, "c", "", "Charset hint")
	flag.StringVar(&charset, "charset", "", "Charset hint")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: md-to-docx -style spec.yaml [flags] [source]\n\n")
		fmt.Fprintf(os.Stderr, "Convert Markdown (and Markdown-reducible formats) to a styled Word document.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source    File to convert (reads stdin if omitted)\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("md-to-docx %s\n", version)
		os.Exit(0)
	}

	if stylePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -style is required")
		flag.Usage()
		os.Exit(1)
	}

	spec, err := style.Load(stylePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Normalize extension
	if extension != "" {
		extension = strings.ToLower(extension)
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
	}

	conv := mdtodocx.New(spec)
	args := flag.Args()

	if len(args) == 0 {
		// Read from stdin
		if output == "" {
			fmt.Fprintln(os.Stderr, "Error: -o is required when reading stdin")
			os.Exit(1)
		}
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", readErr)
			os.Exit(1)
		}
		info := mdtodocx.StreamInfo{
			Extension: extension,
			MIMEType:  mimeType,
			Charset:   charset,
		}
		err = conv.ConvertReader(bytes.NewReader(data), info, output)
	} else {
		source := args[0]
		if output == "" {
			output = outputFor(source)
		}
		err = conv.ConvertFile(source, output)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// outputFor derives the default output path from the source path.
func outputFor(source string) string {
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + ".docx"
}
