package model

// FFProbeOutput is the subset of `ffprobe -print_format json -show_format` we read.
type FFProbeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
	} `json:"streams"`
}
