package cpu

// commonTable holds opcodes whose encoding and semantics are identical on
// both variants. variantTable (z80Table or gbTable, picked in New) is
// consulted first; commonTable is the fallback (spec.md §4.4: "a per-
// variant table overrides the shared table").
var commonTable [256]decodeFunc

// z80Table and gbTable carry only the opcodes each variant defines that
// commonTable does not already cover, plus the handful of opcodes where
// the two variants disagree (0x22/0x2A/0x32/0x3A and the 0xE0/0xE2/0xE8/
// 0xEA/0xF0/0xF2/0xF8/0xFA block, per spec.md §4.4's worked example and
// SPEC_FULL.md's real-hardware encoding).
var z80Table [256]decodeFunc
var gbTable [256]decodeFunc

// z80CBTable and gbCBTable are the 0xCB-prefixed bit-operation pages.
// They're identical except for 0x30-0x37 (Z80's undocumented SLL vs the
// LR35902's documented SWAP).
var z80CBTable [256]decodeFunc
var gbCBTable [256]decodeFunc

// z80EDTable is the Z80-only extended/ED-prefixed page (spec.md §4.2): the
// LR35902 has no ED prefix at all, so decode only consults this table when
// Variant is Z80.
var z80EDTable [256]decodeFunc
