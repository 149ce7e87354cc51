// Package placement decides the final on-disk destinations of run outputs:
// gathering recognizer sidecar files into the output directory and
// relocating the source video under a collision-safe name.
package placement
