// Package merkle provides allowlist membership proofs over keccak256 commitments.
package merkle

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// AddressLeaf hashes a bare wallet address into a leaf node.
func AddressLeaf(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// AllocationLeaf hashes an address together with its pre-assigned token id.
// The id is packed as a 32-byte big-endian word, matching the off-chain
// list tooling's packed encoding.
func AllocationLeaf(addr common.Address, id uint64) common.Hash {
	var word [32]byte
	word[24] = byte(id >> 56)
	word[25] = byte(id >> 48)
	word[26] = byte(id >> 40)
	word[27] = byte(id >> 32)
	word[28] = byte(id >> 24)
	word[29] = byte(id >> 16)
	word[30] = byte(id >> 8)
	word[31] = byte(id)
	return crypto.Keccak256Hash(addr.Bytes(), word[:])
}

// hashPair combines two nodes with the numerically smaller value first, so
// the fold is independent of left/right position.
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return crypto.Keccak256Hash(a[:], b[:])
	}
	return crypto.Keccak256Hash(b[:], a[:])
}

// Verify folds leaf up the sibling path and compares the result to root.
// It never fails hard: any mismatch, including an unset (all-zero) root,
// simply yields false.
func Verify(root common.Hash, proof []common.Hash, leaf common.Hash) bool {
	if root == (common.Hash{}) {
		return false
	}
	node := leaf
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	return node == root
}

// Tree is an in-memory sorted-pair merkle tree, used by admin tooling and
// tests to produce the roots and proofs the verifier consumes.
type Tree struct {
	layers [][]common.Hash
}

// NewTree builds a tree over the given leaves. Leaves are sorted first so
// the root is independent of insertion order. At least one leaf is required;
// a nil tree is returned otherwise.
func NewTree(leaves []common.Hash) *Tree {
	if len(leaves) == 0 {
		return nil
	}
	layer := make([]common.Hash, len(leaves))
	copy(layer, leaves)
	sort.Slice(layer, func(i, j int) bool {
		return bytes.Compare(layer[i][:], layer[j][:]) < 0
	})

	t := &Tree{layers: [][]common.Hash{layer}}
	for len(layer) > 1 {
		next := make([]common.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 < len(layer) {
				next = append(next, hashPair(layer[i], layer[i+1]))
			} else {
				// odd node is promoted unpaired
				next = append(next, layer[i])
			}
		}
		t.layers = append(t.layers, next)
		layer = next
	}
	return t
}

// Root returns the tree's commitment.
func (t *Tree) Root() common.Hash {
	top := t.layers[len(t.layers)-1]
	return top[0]
}

// Proof returns the sibling path for the given leaf, or nil if the leaf is
// not part of the tree.
func (t *Tree) Proof(leaf common.Hash) []common.Hash {
	index := -1
	for i, node := range t.layers[0] {
		if node == leaf {
			index = i
			break
		}
	}
	if index < 0 {
		return nil
	}

	var proof []common.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := index ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		index /= 2
	}
	return proof
}
