package formats

import (
	"archive/tar"
	"bytes"

	"github.com/adrien-f/unpack/internal/extract"
)

// Register adds the built-in formats and sniffers to a registry. Every
// sniffer name is also registered as a named format, so any name the
// registry can report is accepted back as an explicit hint. Sniffers with
// real magic numbers go first; the plain tar probe runs last because
// old-style tar has no magic and must be recognized by parsing a header
// block.
func Register(reg *extract.Registry) {
	reg.RegisterFormat(TarFormat, NewTar)
	reg.RegisterFormat(TarGzFormat, NewTarGz)
	reg.RegisterFormat(TarZstdFormat, NewTarZstd)
	reg.RegisterFormat(TarXzFormat, NewTarXz)
	reg.RegisterFormat(TarBzip2Format, NewTarBzip2)
	reg.RegisterFormat(ZipFormat, NewZip)

	reg.RegisterSniffer(extract.Sniffer{Name: ZipFormat, Match: matchZip, Factory: NewZip})
	reg.RegisterSniffer(extract.Sniffer{Name: TarGzFormat, Match: matchGzip, Factory: NewTarGz})
	reg.RegisterSniffer(extract.Sniffer{Name: TarZstdFormat, Match: matchZstd, Factory: NewTarZstd})
	reg.RegisterSniffer(extract.Sniffer{Name: TarXzFormat, Match: matchXz, Factory: NewTarXz})
	reg.RegisterSniffer(extract.Sniffer{Name: TarBzip2Format, Match: matchBzip2, Factory: NewTarBzip2})
	reg.RegisterSniffer(extract.Sniffer{Name: TarFormat, Match: matchTar, Factory: NewTar})
}

// NewRegistry returns a registry with every built-in format registered.
func NewRegistry() *extract.Registry {
	reg := extract.NewRegistry()
	Register(reg)
	return reg
}

func matchZip(b []byte) bool {
	// PK\x03\x04, plus the empty- and spanned-archive variants.
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' &&
		((b[2] == 0x03 && b[3] == 0x04) || (b[2] == 0x05 && b[3] == 0x06) || (b[2] == 0x07 && b[3] == 0x08))
}

func matchGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}

func matchZstd(b []byte) bool {
	return len(b) >= 4 && b[0] == 0x28 && b[1] == 0xb5 && b[2] == 0x2f && b[3] == 0xfd
}

func matchXz(b []byte) bool {
	return len(b) >= 6 && b[0] == 0xfd && b[1] == 0x37 && b[2] == 0x7a && b[3] == 0x58 && b[4] == 0x5a && b[5] == 0x00
}

func matchBzip2(b []byte) bool {
	return len(b) >= 3 && b[0] == 'B' && b[1] == 'Z' && b[2] == 'h'
}

// matchTar parses the leading block as a tar header, valid checksum and all.
func matchTar(b []byte) bool {
	if len(b) < 512 {
		return false
	}
	_, err := tar.NewReader(bytes.NewReader(b)).Next()
	return err == nil
}
