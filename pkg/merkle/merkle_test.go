package merkle

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addr2 = common.HexToAddress("0x2222222222222222222222222222222222222222")
	addr3 = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestVerify_TwoLeafTree(t *testing.T) {
	leaf1 := AllocationLeaf(addr1, 10)
	leaf2 := AllocationLeaf(addr2, 11)

	tree := NewTree([]common.Hash{leaf1, leaf2})
	require.NotNil(t, tree)

	assert.True(t, Verify(tree.Root(), tree.Proof(leaf1), leaf1))
	assert.True(t, Verify(tree.Root(), tree.Proof(leaf2), leaf2))

	// proof for one leaf must not validate another
	assert.False(t, Verify(tree.Root(), tree.Proof(leaf1), leaf2))
}

func TestVerify_SortedPairCommutative(t *testing.T) {
	leaf1 := AddressLeaf(addr1)
	leaf2 := AddressLeaf(addr2)
	leaf3 := AddressLeaf(addr3)

	// construction order must not change the root
	treeA := NewTree([]common.Hash{leaf1, leaf2, leaf3})
	treeB := NewTree([]common.Hash{leaf3, leaf1, leaf2})
	assert.Equal(t, treeA.Root(), treeB.Root())
}

func TestVerify_ZeroRootAlwaysFails(t *testing.T) {
	leaf := AddressLeaf(addr1)
	tree := NewTree([]common.Hash{leaf, AddressLeaf(addr2)})

	assert.False(t, Verify(common.Hash{}, tree.Proof(leaf), leaf))
}

func TestVerify_CorruptedSibling(t *testing.T) {
	leaf1 := AddressLeaf(addr1)
	leaf2 := AddressLeaf(addr2)
	tree := NewTree([]common.Hash{leaf1, leaf2})

	proof := tree.Proof(leaf1)
	require.Len(t, proof, 1)

	// flip one byte of the sibling hash
	proof[0][5] ^= 0xff
	assert.False(t, Verify(tree.Root(), proof, leaf1))
}

func TestVerify_WrongAllocation(t *testing.T) {
	leaf1 := AllocationLeaf(addr1, 10)
	leaf2 := AllocationLeaf(addr2, 11)
	tree := NewTree([]common.Hash{leaf1, leaf2})

	// same address, different assigned id
	forged := AllocationLeaf(addr2, 111)
	assert.False(t, Verify(tree.Root(), []common.Hash{leaf1}, forged))
}

func TestVerify_SingleLeafEmptyProof(t *testing.T) {
	leaf := AddressLeaf(addr1)
	tree := NewTree([]common.Hash{leaf})

	assert.True(t, Verify(tree.Root(), nil, leaf))
	assert.Equal(t, leaf, tree.Root())
}

func TestNewTree_Empty(t *testing.T) {
	assert.Nil(t, NewTree(nil))
}

func TestTree_ProofUnknownLeaf(t *testing.T) {
	tree := NewTree([]common.Hash{AddressLeaf(addr1), AddressLeaf(addr2)})
	assert.Nil(t, tree.Proof(AddressLeaf(addr3)))
}

func TestAllocationLeaf_PackedEncoding(t *testing.T) {
	// must match keccak256(20-byte address || 32-byte big-endian id)
	var word [32]byte
	word[31] = 11
	want := crypto.Keccak256Hash(addr2.Bytes(), word[:])
	assert.Equal(t, want, AllocationLeaf(addr2, 11))
}
