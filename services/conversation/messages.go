package conversation

import (
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

const (
	msgNoRoomsAvailable = "ຂໍອະໄພ, ຕອນນີ້ບໍ່ມີຫ້ອງວ່າງເລີຍ."
	msgInvalidRoom      = "ຂໍອະໄພ, ຂ້ອຍບໍ່ເຫັນໝາຍເລກຫ້ອງທີ່ຖືກຕ້ອງ. ກະລຸນາລອງໃໝ່."
	msgInvalidDate      = "ຂໍອະໄພ, ຂ້ອຍບໍ່ເຂົ້າໃຈຮູບແບບວັນທີ. ກະລຸນາໃຊ້ຮູບແບບ DD/MM/YYYY ຫຼື 'ມື້ອື່ນ x ຄືນ'."
	msgNoDraft          = "ເກີດຂໍ້ຜິດພາດ, ກະລຸນາເລີ່ມການຈອງໃໝ່."
	msgBookingFailed    = "ຂໍອະໄພ, ເກີດຂໍ້ຜິດພາດໃນຂະນະທີ່ພະຍາຍາມຈອງ. ຫ້ອງນັ້ນອາດຈະຖືກຈອງໄປແລ້ວ. ກະລຸນາລອງໃໝ່."
	msgCancelled        = "ການຈອງໄດ້ຖືກຍົກເລີກ. ຖ້າທ່ານຕ້ອງການເລີ່ມໃໝ່, ພຽງແຕ່ບອກຂ້ອຍ."
	msgGenericError     = "ຂໍອະໄພ, ເກີດຂໍ້ຜິດພາດ. ກະລຸນາລອງຖາມຄຳຖາມໃໝ່."

	msgFocusRoom         = "ກະລຸນາເລືອກໝາຍເລກຫ້ອງກ່ອນ. ຂໍ້ມູນລາຄາໄດ້ແຈ້ງໄວ້ແລ້ວຕອນເລີ່ມຕົ້ນ."
	msgFocusDates        = "ກະລຸນາລະບຸວັນທີເລີ່ມຈອງ ແລະ ວັນທີສິ້ນສຸດກ່ອນ. ຂໍ້ມູນລາຄາໄດ້ແຈ້ງໄວ້ແລ້ວຕອນເລີ່ມຕົ້ນ."
	msgFocusConfirmation = "ກະລຸນາຕອບ ແມ່ນ ຫຼື ບໍ່ ສຳລັບການຢືນຢັນການຈອງກ່ອນ. ຂໍ້ມູນລາຄາໄດ້ແຈ້ງໄວ້ແລ້ວຕອນເລີ່ມຕົ້ນ."
)

func roomSuggestion(rooms []string) string {
	return fmt.Sprintf("ແນ່ນອນ, ຕອນນີ້ພວກເຮົາມີຫ້ອງວ່າງດັ່ງນີ້: %s. ກະລຸນາເລືອກໝາຍເລກຫ້ອງທີ່ທ່ານຕ້ອງການ.", strings.Join(rooms, ", "))
}

func roomUnavailable(room string, available []string) string {
	return fmt.Sprintf("ຫ້ອງ %s ບໍ່ວ່າງ. ກະລຸນາເລືອກຫ້ອງອື່ນຈາກລາຍການ: %s", room, strings.Join(available, ", "))
}

func dateRequest(room string) string {
	return fmt.Sprintf("ເຂົ້າໃຈແລ້ວ, ທ່ານເລືອກຫ້ອງ %s. ກະລຸນາລະບຸວັນທີເລີ່ມຈອງ ແລະ ວັນທີສິ້ນສຸດ (ຕົວຢ່າງ: 11/06/2025 - 13/06/2025 ຫຼື 'ມື້ອື່ນ 2 ຄືນ').", room)
}

func confirmationRequest(room string, start, end time.Time) string {
	return fmt.Sprintf("ທ່ານຕ້ອງການຈອງຫ້ອງ %s ແຕ່ວັນທີ %s ຫາ %s, ແມ່ນບໍ່? (ແມ່ນ/ບໍ່)", room, start.Format(dateFormat), end.Format(dateFormat))
}

func bookingConfirmed(room string) string {
	return fmt.Sprintf("ສຳເລັດ! ຫ້ອງ %s ໄດ້ຖືກຈອງໃຫ້ທ່ານແລ້ວ. ຂອບໃຈທີ່ໃຊ້ບໍລິການ.", room)
}

func bookingNote(sessionID string) string {
	return "Booked via Chatbot session " + sessionID
}
