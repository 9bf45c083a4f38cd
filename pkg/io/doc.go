// Package io reads and writes schedule files.
//
// # Overview
//
// A schedule can be stored as JSON, TOML, or HCL. All three encodings carry
// the same data: an ordered list of tasks, each with a lane, a label, a time
// interval, and an ordered list of transmissions to other lanes.
//
// # JSON Format
//
//	{
//	  "tasks": [
//	    {"lane": 1, "label": "A", "begin_at": 0, "finish_at": 2},
//	    {"lane": 2, "label": "C", "begin_at": 0, "finish_at": 1.5,
//	     "transmissions": [{"begin_at": 1.5, "finish_at": 3, "dest_lane": 1}]}
//	  ]
//	}
//
// # TOML Format
//
//	[[task]]
//	lane = 2
//	label = "C"
//	begin_at = 0.0
//	finish_at = 1.5
//
//	  [[task.transmission]]
//	  begin_at = 1.5
//	  finish_at = 3.0
//	  dest_lane = 1
//
// # HCL Format
//
// The task label is the block label:
//
//	task "C" {
//	  lane      = 2
//	  begin_at  = 0
//	  finish_at = 1.5
//
//	  transmission {
//	    begin_at  = 1.5
//	    finish_at = 3
//	    dest_lane = 1
//	  }
//	}
//
// # Import and Export
//
// [Import] picks the reader from the file extension (.json, .toml, .hcl).
// [Export] picks the writer the same way. Readers only decode; they do not
// validate intervals or lanes. That is the layout engine's job, so a file
// with a backwards interval imports fine and fails at layout time with an
// INVALID_INTERVAL error.
package io
