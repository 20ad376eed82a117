package xmltokenizer_test

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nilasena/xmltokenizer"
	"github.com/nilasena/xmltokenizer/internal/gpx"
	"github.com/nilasena/xmltokenizer/internal/xlsx"
	"github.com/nilasena/xmltokenizer/x/bind"
)

func BenchmarkToken(b *testing.B) {
	filepath.Walk("testdata", func(path string, info fs.FileInfo, _ error) error {
		if info.IsDir() {
			return nil
		}
		name := strings.TrimPrefix(path, "testdata/")
		b.Run(fmt.Sprintf("stdlib.xml:%q", name), func(b *testing.B) {
			var err error
			for i := 0; i < b.N; i++ {
				if err = tokenizeWithStdlibXML(path); err != nil {
					b.Skipf("could not tokenize: %v", err)
				}
			}
		})
		b.Run(fmt.Sprintf("xmltokenizer:%q", name), func(b *testing.B) {
			var err error
			for i := 0; i < b.N; i++ {
				if err = tokenizeWithXMLTokenizer(path); err != nil {
					b.Skipf("could not tokenize: %v", err)
				}
			}
		})
		return nil
	})
}

func tokenizeWithXMLTokenizer(path string) error {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	tok := xmltokenizer.New(f)
	for {
		token, err := tok.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if token.Kind == xmltokenizer.EOF {
			break
		}
	}
	return nil
}

func tokenizeWithStdlibXML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		_ = token
	}
	return nil
}

func BenchmarkUnmarshalGPX(b *testing.B) {
	filepath.Walk("testdata", func(path string, info fs.FileInfo, _ error) error {
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".gpx" {
			return nil
		}

		name := strings.TrimPrefix(path, "testdata/")

		b.Run(fmt.Sprintf("stdlib.xml:%q", name), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = gpx.UnmarshalWithStdlibXML(path)
			}
		})
		b.Run(fmt.Sprintf("xmltokenizer:%q", name), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = gpx.UnmarshalWithXMLTokenizer(path)
			}
		})

		return nil
	})
}

func BenchmarkUnmarshalXLSX(b *testing.B) {
	path := filepath.Join("testdata", "xlsx_sheet1.xml")
	name := strings.TrimPrefix(path, "testdata/")

	b.Run(fmt.Sprintf("stdlib.xml:%q", name), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = xlsx.UnmarshalWithStdlibXML(path)
		}
	})
	b.Run(fmt.Sprintf("xmltokenizer:%q", name), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = xlsx.UnmarshalWithXMLTokenizer(path)
		}
	})
}

// benchGPX is the reflection-bound shape of the GPX fixture, tagged for
// x/bind; benchGPXStdlib is the same shape tagged for encoding/xml so the
// two decoders do equivalent work.
type benchGPX struct {
	Creator string `xml:"@creator"`
	Version string `xml:"@version"`
	Tracks  []struct {
		Name     string `xml:"name"`
		Type     string `xml:"type"`
		Segments []struct {
			Points []struct {
				Lat  float64 `xml:"@lat"`
				Lon  float64 `xml:"@lon"`
				Ele  float64 `xml:"ele"`
				Time string  `xml:"time"`
			} `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type benchGPXStdlib struct {
	Creator string `xml:"creator,attr"`
	Version string `xml:"version,attr"`
	Tracks  []struct {
		Name     string `xml:"name"`
		Type     string `xml:"type"`
		Segments []struct {
			Points []struct {
				Lat  float64 `xml:"lat,attr"`
				Lon  float64 `xml:"lon,attr"`
				Ele  float64 `xml:"ele"`
				Time string  `xml:"time"`
			} `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

func BenchmarkUnmarshalBind(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "ride.gpx"))
	if err != nil {
		b.Fatal(err)
	}

	b.Run("stdlib.xml", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var g benchGPXStdlib
			if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("x/bind", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var g benchGPX
			if err := bind.Unmarshal(data, &g); err != nil {
				b.Fatal(err)
			}
		}
	})
}
