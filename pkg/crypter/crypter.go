package crypter

var Instance *BcryptCrypter

func init() {
	Instance = NewBcryptCrypter(DefaultCost)
}
