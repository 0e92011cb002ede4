// Package raster is the CPU rendering backend behind the built-in xforms.
//
// Textures are plain NRGBA buffers held in a [TextureStore] and addressed
// by the handles the graph passes between ports. The image operations are
// thin wrappers over github.com/disintegration/imaging.
package raster
