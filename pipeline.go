package vkdev

// PipelineCache compiles and caches pipelines for registered shaders. The
// device forwards shader registration and consumes the pipeline counts for
// its statistics snapshot; compilation itself is not part of this package.
type PipelineCache interface {
	// RegisterShader makes a shader module available for pipeline creation.
	RegisterShader(shader *Shader)
	// PipelineCounts reports the number of graphics and compute pipelines
	// compiled so far.
	PipelineCounts() (graphics, compute uint64)
}
