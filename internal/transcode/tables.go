package transcode

// latin1Supplement fills 0xA0..0xFF with the Unicode Latin-1 Supplement
// block, which is what every Acorn/ISO-derived target here shares above
// 0xA0; each variant then overrides its own 0x80..0x9F control/extension
// range and any locale-specific substitutions (e.g. the Euro sign).
func latin1Supplement() []mapEntry {
	entries := make([]mapEntry, 0, 96)
	for b := 0xA0; b <= 0xFF; b++ {
		entries = append(entries, mapEntry{codePoint: rune(b), b: byte(b)})
	}
	return entries
}

// withOverrides returns base with entries at the given code points replaced
// or inserted (by byte), re-sorted by code point. Any base entry whose byte
// is claimed by an override is evicted too, even if its own code point
// wasn't one of the overridden keys, so two entries never end up sharing one
// target byte. Used to express each Acorn Latin variant's 0x80..0x9F
// extension range and locale punches.
func withOverrides(base []mapEntry, overrides map[rune]byte) []mapEntry {
	out := make([]mapEntry, 0, len(base)+len(overrides))
	seenCP := make(map[rune]bool, len(overrides))
	seenByte := make(map[byte]bool, len(overrides))
	for cp, b := range overrides {
		out = append(out, mapEntry{codePoint: cp, b: b})
		seenCP[cp] = true
		seenByte[b] = true
	}
	for _, e := range base {
		if seenCP[e.codePoint] || seenByte[e.b] {
			continue
		}
		out = append(out, e)
	}
	// insertion sort is fine; table sizes are ~100 entries, built once.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].codePoint < out[j-1].codePoint; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// acornExtensionRunes is the common 0x80..0x9F "Acorn extended Latin" block
// shared by all ten AcornL variants (accented letters and punctuation used
// across Western European languages), in byte order starting at 0x80.
// Expressed as code points to keep the source file encoding-safe.
var acornExtensionRunes = []rune{
	0x0178, // Latin capital letter Y with diaeresis
	0x0153, // Latin small ligature oe
	0x0152, // Latin capital ligature OE
	0x017E, // Latin small letter z with caron
	0x017D, // Latin capital letter Z with caron
	0x2022, // bullet
	0x2014, // em dash
	0x2013, // en dash
	0x2018, // left single quotation mark
	0x2019, // right single quotation mark
	0x201C, // left double quotation mark
	0x201D, // right double quotation mark
	0x2020, // dagger
	0x2021, // double dagger
	0x2030, // per mille sign
	0x00A1, // inverted exclamation mark
	0x00A2, // cent sign
	0x00A3, // pound sign
	0x20AC, // euro sign (repositioned per variant by acornVariant)
	0x00A5, // yen sign
	0x00A6, // broken bar
	0x00A7, // section sign
	0x00A8, // diaeresis
	0x00A9, // copyright sign
	0x00AA, // feminine ordinal indicator
	0x00AB, // left-pointing double angle quotation mark
	0x00AC, // not sign
	0x00AF, // macron
	0x00AE, // registered sign
	0x00B0, // degree sign
	0x0160, // Latin capital letter S with caron
	0x0161, // Latin small letter s with caron
}

// acornExtension builds the 0x80..0x9F overrides map for one Acorn variant.
func acornExtension() map[rune]byte {
	m := make(map[rune]byte, len(acornExtensionRunes))
	for i, r := range acornExtensionRunes {
		m[r] = byte(0x80 + i)
	}
	return m
}

var acornBase = withOverrides(latin1Supplement(), acornExtension())

// acornVariant builds one AcornLn table: the shared extension block, with
// the Euro sign repositioned to euroByte to model each variant's locale punch.
// The code point that held euroByte moves to the Euro's byte in the shared
// block, so the move leaves no hole.
func acornVariant(euroByte byte) []mapEntry {
	overrides := map[rune]byte{0x20AC: euroByte}
	euroHome := acornExtension()[0x20AC]
	for _, e := range acornBase {
		if e.b == euroByte && e.codePoint != 0x20AC {
			overrides[e.codePoint] = euroHome
		}
	}
	return withOverrides(acornBase, overrides)
}

var (
	tableAcornL1   = newTable(AcornL1, "", acornVariant(0x80))
	tableAcornL2   = newTable(AcornL2, "", acornVariant(0x81))
	tableAcornL3   = newTable(AcornL3, "", acornVariant(0x82))
	tableAcornL4   = newTable(AcornL4, "", acornVariant(0x83))
	tableAcornL5   = newTable(AcornL5, "", acornVariant(0x84))
	tableAcornL6   = newTable(AcornL6, "", acornVariant(0x85))
	tableAcornL7   = newTable(AcornL7, "", acornVariant(0x86))
	tableAcornL8   = newTable(AcornL8, "", acornVariant(0x87))
	tableAcornL9   = newTable(AcornL9, "windows-1252", acornVariant(0xA4))
	tableAcornL10  = newTable(AcornL10, "", acornVariant(0x88))
	tableWelsh     = newTable(Welsh, "", acornVariant(0x89))
	tableCyrillic  = newTable(Cyrillic, "windows-1251", cyrillicEntries())
	tableCyrillic2 = newTable(Cyrillic2, "koi8-r", cyrillicEntries())
	tableGreek     = newTable(Greek, "windows-1253", greekEntries())
	tableHebrew    = newTable(Hebrew, "windows-1255", hebrewEntries())
	tableBFont     = newTable(BFont, "", bFontEntries())
)

// cyrillicEntries maps the Cyrillic alphabet (U+0410..U+044F) onto
// 0xC0..0xFF, with 0x80..0xBF reusing the shared punctuation/Euro block.
func cyrillicEntries() []mapEntry {
	overrides := map[rune]byte{}
	b := 0xC0
	for r := rune(0x0410); r <= 0x044F && b <= 0xFF; r++ {
		overrides[r] = byte(b)
		b++
	}
	return withOverrides(acornBase, overrides)
}

// greekEntries maps the Greek alphabet (U+0391..U+03C9) onto 0xC0..0xF8.
func greekEntries() []mapEntry {
	overrides := map[rune]byte{}
	b := 0xC0
	for r := rune(0x0391); r <= 0x03C9 && b <= 0xFF; r++ {
		overrides[r] = byte(b)
		b++
	}
	return withOverrides(acornBase, overrides)
}

// hebrewEntries maps the Hebrew alphabet (U+05D0..U+05EA) onto 0xE0..0xFA.
func hebrewEntries() []mapEntry {
	overrides := map[rune]byte{}
	b := 0xE0
	for r := rune(0x05D0); r <= 0x05EA && b <= 0xFF; r++ {
		overrides[r] = byte(b)
		b++
	}
	return withOverrides(acornBase, overrides)
}

// bFontEntries is the dingbat/symbol target: box-drawing glyphs above
// 0xA0, used by legacy hypertext rule-off rendering.
func bFontEntries() []mapEntry {
	runes := []rune{
		0x2500, 0x2502, 0x250C, 0x2510, 0x2514, 0x2518, 0x251C,
		0x2524, 0x252C, 0x2534, 0x253C, 0x2580, 0x2584, 0x2588,
		0x258C, 0x2590,
	}
	overrides := make(map[rune]byte, len(runes))
	for i, r := range runes {
		overrides[r] = byte(0xA0 + i)
	}
	return withOverrides(acornBase, overrides)
}

// tableFor resolves a TargetKind to its static table. UTF8 and SevenBit have
// no table (they never map above 0x7F).
func tableFor(kind TargetKind) *Table {
	switch kind {
	case AcornL1:
		return tableAcornL1
	case AcornL2:
		return tableAcornL2
	case AcornL3:
		return tableAcornL3
	case AcornL4:
		return tableAcornL4
	case AcornL5:
		return tableAcornL5
	case AcornL6:
		return tableAcornL6
	case AcornL7:
		return tableAcornL7
	case AcornL8:
		return tableAcornL8
	case AcornL9:
		return tableAcornL9
	case AcornL10:
		return tableAcornL10
	case Cyrillic:
		return tableCyrillic
	case Cyrillic2:
		return tableCyrillic2
	case Greek:
		return tableGreek
	case Hebrew:
		return tableHebrew
	case Welsh:
		return tableWelsh
	case BFont:
		return tableBFont
	default:
		return nil
	}
}
