package apu

// DutyTable is the 8-step waveform for each of the four duty cycles a
// pulse channel's NRx1 register selects (12.5/25/50/75%), so a sink or
// renderer can sample a position directly instead of needing to know the
// hardware duty encoding — grounded on the teacher's audio_lut.go
// precomputed-table approach in place of a per-sample trig call.
var DutyTable = [4][8]bool{
	{false, false, false, false, false, false, false, true}, // 12.5%
	{true, false, false, false, false, false, false, true},  // 25%
	{true, false, false, false, false, true, true, true},    // 50%
	{false, true, true, true, true, true, true, false},      // 75%
}
