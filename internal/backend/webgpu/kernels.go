//go:build windows

package webgpu

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// maxWorkgroups is the per-dimension dispatch limit guaranteed by WebGPU.
const maxWorkgroups = 65535

// gatherShader copies whole complex128 elements (four u32 words each) from
// src[row, idx[k]] to dst[row, k]. It loops with a grid stride so one dispatch
// covers any element count.
const gatherShader = `
@group(0) @binding(0) var<storage, read> src: array<u32>;
@group(0) @binding(1) var<storage, read> idx: array<u32>;
@group(0) @binding(2) var<storage, read_write> dst: array<u32>;

struct Params {
    rows: u32,
    cols: u32,
    keep: u32,
    _pad: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>,
        @builtin(num_workgroups) groups: vec3<u32>) {
    let total = params.rows * params.keep;
    let stride = groups.x * 256u;
    for (var e = global_id.x; e < total; e = e + stride) {
        let row = e / params.keep;
        let k = e % params.keep;
        let at = (row * params.cols + idx[k]) * 4u;
        let to = e * 4u;
        dst[to] = src[at];
        dst[to + 1u] = src[at + 1u];
        dst[to + 2u] = src[at + 2u];
        dst[to + 3u] = src[at + 3u];
    }
}
`
