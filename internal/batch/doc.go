// Package batch runs the transcription pipeline over a list of media files.
//
// Files are processed one at a time. For each file the recognized segments
// are converted to the target script and formatted one by one, checking for
// cancellation before every segment; the subtitle and transcript files are
// written only once the whole file went through, so a cancelled or failed
// file never leaves partial output behind. A failing file is recorded and
// the batch moves on; cancellation stops the batch.
package batch
