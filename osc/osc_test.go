package osc

// Shared wire fixtures for the codec tests. Raw bytes are written out
// explicitly so the tests pin the wire format, not just round-tripping.

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

var messageTestCases = []testCase{
	{
		"no_arguments",
		&Message{Address: "/a/b"},
		[]byte("/a/b\x00\x00\x00\x00,\x00\x00\x00"),
		false,
	},
	{
		"float_argument",
		&Message{Address: "/synth/freq", Arguments: []interface{}{float32(440.0)}},
		[]byte("/synth/freq\x00,f\x00\x00\x43\xdc\x00\x00"),
		false,
	},
	{
		"int_and_string",
		&Message{Address: "/m", Arguments: []interface{}{int32(1122), "hi"}},
		[]byte("/m\x00\x00,is\x00\x00\x00\x04\x62hi\x00\x00"),
		false,
	},
	{
		"all_remaining_types",
		&Message{Address: "/t", Arguments: []interface{}{
			int64(1), float64(0.5), []byte{1, 2, 3}, Timetag(1), true, false, nil,
		}},
		[]byte("/t\x00\x00,hdbtTFN\x00\x00\x00\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x3f\xe0\x00\x00\x00\x00\x00\x00" +
			"\x00\x00\x00\x03\x01\x02\x03\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01"),
		false,
	},
	{
		"not_an_address",
		nil,
		[]byte("abcd"),
		true,
	},
	{
		"unpadded",
		nil,
		[]byte("/ab"),
		true,
	},
	{
		"missing_typetags",
		nil,
		[]byte("/a\x00\x00"),
		true,
	},
	{
		"unknown_typetag",
		nil,
		[]byte("/a\x00\x00,q\x00\x00"),
		true,
	},
	{
		// U+0169 encodes as 0xc5 0xa9; byte-wise neither is a valid tag.
		"multibyte_typetag",
		nil,
		[]byte("/a\x00\x00,\xc5\xa9\x00" + "\x00\x00\x04\x62"),
		true,
	},
	{
		"truncated_argument",
		nil,
		[]byte("/a\x00\x00,i\x00\x00"),
		true,
	},
}

var bundleTestCases = []testCase{
	{
		"empty_bundle",
		&Bundle{Timetag: TimetagImmediate},
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01"),
		false,
	},
	{
		"one_message",
		&Bundle{Timetag: TimetagImmediate, Elements: []Packet{
			&Message{Address: "/a/b"},
		}},
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x0c/a/b\x00\x00\x00\x00,\x00\x00\x00"),
		false,
	},
	{
		"nested_bundle",
		&Bundle{Timetag: TimetagImmediate, Elements: []Packet{
			&Message{Address: "/a"},
			&Bundle{Timetag: TimetagImmediate, Elements: []Packet{
				&Message{Address: "/b"},
			}},
		}},
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x08/a\x00\x00,\x00\x00\x00" +
			"\x00\x00\x00\x1c" +
			"#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x08/b\x00\x00,\x00\x00\x00"),
		false,
	},
	{
		"bad_start_tag",
		nil,
		[]byte("#bundlX\x00\x00\x00\x00\x00\x00\x00\x00\x01"),
		true,
	},
	{
		"too_short",
		nil,
		[]byte("#bundle\x00"),
		true,
	},
	{
		"bad_element_length",
		nil,
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01\x00\x00\x00\x10"),
		true,
	},
}
