// Package script classifies characters by writing system and moves letters
// between the Latin and Cyrillic alphabets.
//
// It holds the static data every script-aware transform shares:
//
//   - [Classify] sorts a rune into [Latin], [Cyrillic] or [Other].
//   - [Alphabet] models an alphabet as an explicit ordered sequence of code
//     points. [LatinAlphabet] has 26 letters and [CyrillicAlphabet] has 32.
//     Ё is a Cyrillic letter but is not part of the 32-letter sequence, so it
//     has no index and shift transforms leave it untouched.
//   - [ToLatin] and [ToCyrillic] are the transliteration tables.
//   - [Resolve] applies a [Layout] policy to a single rune.
//
// # Lossy transliteration
//
// The Cyrillic to Latin table is not injective. Е and Ё both become E, Ж and
// З both become Z, Ц and Ч both become C, Ш and Щ both become S, Ъ and Ь
// both become an apostrophe. [ToCyrillic] picks one representative for each
// Latin letter, so a round trip through both tables does not always restore
// the original letter.
//
// All tables are built once at package initialization and never modified,
// so every function here is safe for concurrent use.
package script
