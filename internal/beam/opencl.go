package beam

// openCLSource mirrors Seed and Step. Buffers are row-major float4 arrays.
const openCLSource = `uint wang_hash(uint h)
{
    h = (h ^ 61u) ^ (h >> 16);
    h *= 9u;
    h ^= h >> 4;
    h *= 0x27d4eb2du;
    h ^= h >> 15;
    return h;
}

uint hash_cell(uint seed, int x, int y, uint salt)
{
    uint h = wang_hash(seed ^ 0x9e3779b9u);
    h = wang_hash(h ^ (uint)x);
    h = wang_hash(h ^ (uint)y * 0x85ebca6bu);
    return wang_hash(h ^ salt);
}

float unit_float(uint h)
{
    return (float)(h >> 8) / 16777216.0f;
}

float3 direction(uint a, uint b)
{
    float z = unit_float(a) * 2.0f - 1.0f;
    float theta = unit_float(b) * 6.28318530718f;
    float r = sqrt(max(0.0f, 1.0f - z * z));
    return (float3)(r * cos(theta), r * sin(theta), z);
}

__kernel void seed_cells(
    const int width,
    const int height,
    const int seed,
    const float throttle,
    const float delta,
    __global float4* dst)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    uint s = (uint)seed;
    float3 d = direction(hash_cell(s, x, y, 0u), hash_cell(s, x, y, 1u));
    dst[idx] = (float4)(d, unit_float(hash_cell(s, x, y, 2u)));
}

__kernel void step_cells(
    const int width,
    const int height,
    const int seed,
    const float throttle,
    const float delta,
    __global const float4* src,
    __global float4* dst)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    uint s = (uint)seed;
    float4 prev = src[idx];
    float speed = 0.5f + unit_float(hash_cell(s, x, y, 3u));
    float phase = prev.w + delta * throttle * speed;
    float wraps = floor(phase);
    float3 d = prev.xyz;
    if (wraps != 0.0f) {
        uint rs = s ^ as_uint(prev.x);
        uint salt = as_uint(prev.y) ^ as_uint(prev.z);
        d = direction(hash_cell(rs, x, y, salt), hash_cell(rs, x, y, salt ^ 1u));
    }
    dst[idx] = (float4)(d, phase - wraps);
}
`
