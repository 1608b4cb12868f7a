package constants

import (
	"time"
)

// *********************************************************************************************************************
// THESE CONTROL HOW THE LIST IS PARTITIONED. DEFAULTS CAN BE OVERRIDDEN WITH FLAGS, ENV VARS OR THE CONFIG FILE

// DefaultChunkSize is the number of items per chunk
const DefaultChunkSize = 10

// DefaultBufferSize is the number of extra items loaded beyond each side of the visible range
const DefaultBufferSize = 4

// DefaultThreshold is the minimum number of items before the list is chunked at all
const DefaultThreshold = 50

// DefaultLoadTriggerPercent is how far through the loaded items the view must be before the next chunk is preloaded
const DefaultLoadTriggerPercent = 75

// DefaultMaxChunksInMemory bounds the number of loaded chunks
const DefaultMaxChunksInMemory = 20

// *********************************************************************************************************************

// DefaultGenerateCount is the number of demo items generated when no collection file is given
const DefaultGenerateCount = 500

// GenerateSeed makes generated demo collections reproducible
const GenerateSeed = 1

// ToastDuration controls how long transient messages stay on screen
var ToastDuration = 5 * time.Second

// ContinuationIndicator marks truncated item lines
const ContinuationIndicator = "..."
