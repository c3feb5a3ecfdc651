//go:build sd && cgo

// Native bindings for stable-diffusion.cpp.
//
// Prerequisites:
//  1. stable-diffusion.cpp compiled as a shared library
//  2. CGO_CFLAGS pointing at the header: -I/path/to/stable-diffusion.cpp
//  3. CGO_LDFLAGS linking the library: -L/path/to/build -lstable-diffusion
//
// Example:
//
//	CGO_CFLAGS="-I${SD_CPP_PATH}" \
//	CGO_LDFLAGS="-L${SD_CPP_PATH}/build -lstable-diffusion" \
//	go build -tags sd

package sdruntime

/*
#cgo LDFLAGS: -lstable-diffusion

#include <stdlib.h>
#include <stdint.h>

// Placeholder declarations until the header integration lands; the library
// ABI below matches stable-diffusion.cpp's txt2img entry points.
typedef void* sd_ctx_t;

// extern sd_ctx_t* sd_ctx_create(const char* model_path, int n_threads);
// extern void sd_ctx_free(sd_ctx_t* ctx);
// extern uint8_t* txt2img(sd_ctx_t* ctx, const char* prompt, const char* negative_prompt,
//                         int width, int height, int steps, float cfg_scale, int64_t seed);
// extern void sd_free_image(uint8_t* img);
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type sdModel struct {
	ctx C.sd_ctx_t
}

func loadNativeModel(path string) (nativeModel, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	// TODO(sd-integration): call sd_ctx_create once the header is vendored
	return nil, fmt.Errorf("%w: stable-diffusion.cpp header integration pending", ErrModelLoadFailed)
}

func (m *sdModel) generate(params GenerateParams) (*GenerateResult, error) {
	cPrompt := C.CString(params.Prompt)
	defer C.free(unsafe.Pointer(cPrompt))
	cNegative := C.CString(params.NegativePrompt)
	defer C.free(unsafe.Pointer(cNegative))

	// TODO(sd-integration): call txt2img, copy the RGBA buffer with
	// C.GoBytes, release it with sd_free_image, then EncodeToPNG
	return nil, fmt.Errorf("%w: stable-diffusion.cpp header integration pending", ErrGenerationFailed)
}

func (m *sdModel) free() {
	// TODO(sd-integration): sd_ctx_free
}

func backendInfoImpl() string {
	return "stable-diffusion.cpp (cgo)"
}
