// Package i18n holds the bilingual message catalog of the bot.
// Arabic is the default language of the audience; English is kept in
// full parity so either can be picked at registration.
package i18n

import "FarmBot/entity"

type Key string

const (
	// registration
	KeyChooseLanguage  Key = "choose_language"
	KeyAskName         Key = "ask_name"
	KeyNameTooShort    Key = "name_too_short"
	KeyAskPhone        Key = "ask_phone"
	KeyPhoneInvalid    Key = "phone_invalid"
	KeySharePhone      Key = "share_phone"
	KeyAskVillage      Key = "ask_village"
	KeyWelcomeDone     Key = "welcome_done"
	KeyWelcomeBack     Key = "welcome_back"
	KeyAlreadyRegistered Key = "already_registered"

	// shared vocabulary
	KeyToday        Key = "today"
	KeyYesterday    Key = "yesterday"
	KeyPickDate     Key = "pick_date"
	KeyEnterDate    Key = "enter_date"
	KeyInvalidDate  Key = "invalid_date"
	KeySkip         Key = "skip"
	KeyCancel       Key = "cancel"
	KeyBack         Key = "back"
	KeyYes          Key = "yes"
	KeyNo           Key = "no"
	KeyConfirm      Key = "confirm"
	KeyCancelled    Key = "cancelled"
	KeyFlowActive   Key = "flow_active"
	KeyInvalidAmount Key = "invalid_amount"
	KeyUnknownOption Key = "unknown_option"
	KeyError        Key = "error"
	KeyMainMenu     Key = "main_menu"
	KeyNotRegistered Key = "not_registered"

	// main menu buttons
	KeyBtnAccount    Key = "btn_account"
	KeyBtnCrops      Key = "btn_crops"
	KeyBtnHarvest    Key = "btn_harvest"
	KeyBtnPayments   Key = "btn_payments"
	KeyBtnTreatments Key = "btn_treatments"
	KeyBtnExpenses   Key = "btn_expenses"
	KeyBtnPrices     Key = "btn_prices"
	KeyBtnSummary    Key = "btn_summary"
	KeyBtnHelp       Key = "btn_help"

	// crops
	KeyAddCropStart     Key = "addcrop_start"
	KeyOrSuggestion     Key = "or_suggestion"
	KeyCropExists       Key = "crop_exists"
	KeyWhenPlanted      Key = "when_planted"
	KeyChooseOption     Key = "choose_option"
	KeyAskNotes         Key = "ask_notes"
	KeyCropSummary      Key = "crop_summary"
	KeyCropAdded        Key = "crop_added"
	KeyCropAddError     Key = "crop_add_error"
	KeyYourCrops        Key = "your_crops"
	KeyNoCrops          Key = "no_crops"
	KeyAddCropBtn       Key = "add_crop_btn"
	KeyEditBtn          Key = "edit_btn"
	KeyDeleteBtn        Key = "delete_btn"
	KeyHarvestBtn       Key = "harvest_btn"
	KeyDeleteConfirm    Key = "delete_confirm"
	KeyYesDelete        Key = "yes_delete"
	KeyCropDeleted      Key = "crop_deleted"
	KeyCropDeleteError  Key = "crop_delete_error"
	KeyChooseEditField  Key = "choose_edit_field"
	KeyFieldName        Key = "field_name"
	KeyFieldDate        Key = "field_date"
	KeyFieldNotes       Key = "field_notes"
	KeyEnterNewName     Key = "enter_new_name"
	KeyEnterNewDate     Key = "enter_new_date"
	KeyEnterNewNotes    Key = "enter_new_notes"
	KeyCropNameUpdated  Key = "crop_name_updated"
	KeyCropDateUpdated  Key = "crop_date_updated"
	KeyCropNotesUpdated Key = "crop_notes_updated"
	KeyCropUpdateError  Key = "crop_update_error"

	// harvest
	KeyChooseCrop       Key = "choose_crop"
	KeyNoCropsAddFirst  Key = "no_crops_add_first"
	KeyWhenHarvest      Key = "when_harvest"
	KeyAskQuantity      Key = "ask_quantity"
	KeyHarvestBranch    Key = "harvest_branch"
	KeyStoredBtn        Key = "stored_btn"
	KeyDeliveredBtn     Key = "delivered_btn"
	KeyAskCollector     Key = "ask_collector"
	KeyAskMarket        Key = "ask_market"
	KeyHarvestStored    Key = "harvest_stored"
	KeyHarvestDelivered Key = "harvest_delivered"
	KeyHarvestError     Key = "harvest_error"

	// treatments
	KeyAskProduct       Key = "ask_product"
	KeyWhenTreatment    Key = "when_treatment"
	KeyAskCost          Key = "ask_cost"
	KeyAskNextDue       Key = "ask_next_due"
	KeyTreatmentSaved   Key = "treatment_saved"
	KeyTreatmentError   Key = "treatment_error"
	KeyUpcomingTreatments Key = "upcoming_treatments"

	// expenses
	KeyChooseCategory  Key = "choose_category"
	KeyCatSeeds        Key = "cat_seeds"
	KeyCatFertilizer   Key = "cat_fertilizer"
	KeyCatTransport    Key = "cat_transport"
	KeyCatOther        Key = "cat_other"
	KeyLinkCrop        Key = "link_crop"
	KeyNoCropLink      Key = "no_crop_link"
	KeyAskAmount       Key = "ask_amount"
	KeyWhenExpense     Key = "when_expense"
	KeyExpenseSaved    Key = "expense_saved"
	KeyExpenseError    Key = "expense_error"

	// payments
	KeyPendingHeader    Key = "pending_header"
	KeyNoPending        Key = "no_pending"
	KeyMarkPaidBtn      Key = "mark_paid_btn"
	KeyCreatePendingBtn Key = "create_pending_btn"
	KeyPaidDirectBtn    Key = "paid_direct_btn"
	KeyUnlinkedHeader   Key = "unlinked_header"
	KeyAskPaidAmount    Key = "ask_paid_amount"
	KeyPaymentSaved     Key = "payment_saved"
	KeyPaymentError     Key = "payment_error"
	KeyPendingCreated   Key = "pending_created"

	// prices and summary
	KeyPricesHeader  Key = "prices_header"
	KeyNoPrices      Key = "no_prices"
	KeySummaryHeader Key = "summary_header"
	KeyTotalHarvest  Key = "total_harvest"
	KeyTotalExpenses Key = "total_expenses"
	KeyTotalPending  Key = "total_pending"

	// help and account
	KeyHelp    Key = "help"
	KeyAccount Key = "account"

	// advisor
	KeyAskAdvisor    Key = "ask_advisor"
	KeyAdvisorError  Key = "advisor_error"
)

var catalog = map[Key]map[string]string{
	KeyChooseLanguage:  {"ar": "أهلاً! اختر لغتك:", "en": "Welcome! Choose your language:"},
	KeyAskName:         {"ar": "ما اسمك الكامل؟", "en": "What is your full name?"},
	KeyNameTooShort:    {"ar": "الاسم قصير جدًا. أدخل اسمًا صحيحًا.", "en": "Name is too short. Enter a valid name."},
	KeyAskPhone:        {"ar": "أرسل رقم هاتفك أو اضغط على الزر لمشاركته.", "en": "Send your phone number or tap the button to share it."},
	KeyPhoneInvalid:    {"ar": "رقم الهاتف غير صالح. حاول مرة أخرى.", "en": "Invalid phone number. Please try again."},
	KeySharePhone:      {"ar": "📱 مشاركة رقم الهاتف", "en": "📱 Share phone number"},
	KeyAskVillage:      {"ar": "من أي قرية أنت؟ اكتبها أو اختر من الاقتراحات:", "en": "Which village are you from? Type it or pick a suggestion:"},
	KeyWelcomeDone:     {"ar": "تم التسجيل! أهلاً بك في دفتر المزرعة. 🌾", "en": "Registered! Welcome to your farm record book. 🌾"},
	KeyWelcomeBack:     {"ar": "أهلاً بعودتك", "en": "Welcome back"},
	KeyAlreadyRegistered: {"ar": "أنت مسجل بالفعل.", "en": "You are already registered."},

	KeyToday:        {"ar": "اليوم", "en": "Today"},
	KeyYesterday:    {"ar": "أمس", "en": "Yesterday"},
	KeyPickDate:     {"ar": "📅 اختر تاريخًا", "en": "📅 Pick Date"},
	KeyEnterDate:    {"ar": "أدخل التاريخ (YYYY-MM-DD أو DD/MM/YYYY)", "en": "Enter date (YYYY-MM-DD or DD/MM/YYYY)"},
	KeyInvalidDate:  {"ar": "صيغة التاريخ غير صحيحة. استخدم YYYY-MM-DD أو DD/MM/YYYY", "en": "Invalid date format. Use YYYY-MM-DD or DD/MM/YYYY"},
	KeySkip:         {"ar": "تخطي", "en": "Skip"},
	KeyCancel:       {"ar": "إلغاء", "en": "Cancel"},
	KeyBack:         {"ar": "🔙 العودة", "en": "🔙 Back"},
	KeyYes:          {"ar": "نعم", "en": "Yes"},
	KeyNo:           {"ar": "لا", "en": "No"},
	KeyConfirm:      {"ar": "✅ تأكيد", "en": "✅ Confirm"},
	KeyCancelled:    {"ar": "تم الإلغاء.", "en": "Cancelled."},
	KeyFlowActive:   {"ar": "لديك عملية جارية. أكملها أو أرسل /cancel أولاً.", "en": "You have a flow in progress. Finish it or send /cancel first."},
	KeyInvalidAmount: {"ar": "أدخل رقمًا صحيحًا أكبر من صفر.", "en": "Enter a valid number greater than zero."},
	KeyUnknownOption: {"ar": "خيار غير معروف.", "en": "Unknown option."},
	KeyError:        {"ar": "حدث خطأ. حاول مرة أخرى.", "en": "Something went wrong. Please try again."},
	KeyMainMenu:     {"ar": "القائمة الرئيسية:", "en": "Main menu:"},
	KeyNotRegistered: {"ar": "أرسل /start للتسجيل أولاً.", "en": "Send /start to register first."},

	KeyBtnAccount:    {"ar": "🇱🇧 حسابي", "en": "🇱🇧 My Account"},
	KeyBtnCrops:      {"ar": "🌾 محاصيلي", "en": "🌾 My Crops"},
	KeyBtnHarvest:    {"ar": "🧾 سجل الحصاد", "en": "🧾 Record Harvest"},
	KeyBtnPayments:   {"ar": "💵 المدفوعات المعلقة", "en": "💵 Pending Payments"},
	KeyBtnTreatments: {"ar": "🗓️ التسميد/علاج", "en": "🗓️ Fertilize & Treat"},
	KeyBtnExpenses:   {"ar": "💸 مصاريف", "en": "💸 Expenses"},
	KeyBtnPrices:     {"ar": "📈 الأسعار بالسوق", "en": "📈 Market Prices"},
	KeyBtnSummary:    {"ar": "📊 ملخص الاسبوع", "en": "📊 Weekly Summary"},
	KeyBtnHelp:       {"ar": "❓مساعدة", "en": "❓Help"},

	KeyAddCropStart:     {"ar": "بدء إضافة محصول جديد — اكتب اسم المحصول أدناه.", "en": "Adding a new crop. Type the crop name below."},
	KeyOrSuggestion:     {"ar": "أو اضغط على أحد الاقتراحات:", "en": "Or tap a suggestion:"},
	KeyCropExists:       {"ar": "يوجد محصول بنفس الاسم. اختر اسمًا مختلفًا.", "en": "A crop with that name already exists. Pick a different name."},
	KeyWhenPlanted:      {"ar": "متى تم زراعته؟", "en": "When was it planted?"},
	KeyChooseOption:     {"ar": "اختر طريقة الإدخال:", "en": "Choose an option:"},
	KeyAskNotes:         {"ar": "ملاحظات (اختياري)", "en": "Notes (optional)"},
	KeyCropSummary:      {"ar": "راجع البيانات ثم أكّد:", "en": "Review the details and confirm:"},
	KeyCropAdded:        {"ar": "تم إضافة المحصول بنجاح! ✅", "en": "Crop added successfully! ✅"},
	KeyCropAddError:     {"ar": "خطأ أثناء إضافة المحصول. حاول مرة أخرى.", "en": "Error adding crop. Please try again."},
	KeyYourCrops:        {"ar": "🌾 محاصيلك:", "en": "🌾 Your Crops:"},
	KeyNoCrops:          {"ar": "ليس لديك محاصيل.", "en": "No crops found."},
	KeyAddCropBtn:       {"ar": "➕ أضف محصول", "en": "➕ Add Crop"},
	KeyEditBtn:          {"ar": "✏️ تعديل", "en": "✏️ Edit"},
	KeyDeleteBtn:        {"ar": "🗑️ حذف", "en": "🗑️ Delete"},
	KeyHarvestBtn:       {"ar": "🧾 سجل حصاد", "en": "🧾 Record Harvest"},
	KeyDeleteConfirm:    {"ar": "هل أنت متأكد؟ حذف المحصول سيحذف بياناته.", "en": "Are you sure? Deleting a crop will remove its data."},
	KeyYesDelete:        {"ar": "نعم، احذف", "en": "Yes, delete"},
	KeyCropDeleted:      {"ar": "تم حذف المحصول.", "en": "Crop deleted."},
	KeyCropDeleteError:  {"ar": "خطأ: لم يتم الحذف.", "en": "Error: could not delete crop."},
	KeyChooseEditField:  {"ar": "اختر الحقل الذي تريد تعديله:", "en": "Choose the field you want to edit:"},
	KeyFieldName:        {"ar": "الاسم", "en": "Name"},
	KeyFieldDate:        {"ar": "تاريخ الزراعة", "en": "Planting Date"},
	KeyFieldNotes:       {"ar": "ملاحظات", "en": "Notes"},
	KeyEnterNewName:     {"ar": "أدخل الاسم الجديد:", "en": "Enter new name:"},
	KeyEnterNewDate:     {"ar": "أدخل التاريخ الجديد (YYYY-MM-DD):", "en": "Enter new planting date (YYYY-MM-DD):"},
	KeyEnterNewNotes:    {"ar": "أدخل الملاحظات الجديدة أو اكتب 'تخطي' للإزالة:", "en": "Enter new notes or type 'Skip' to clear:"},
	KeyCropNameUpdated:  {"ar": "تم تحديث اسم المحصول.", "en": "Crop name updated."},
	KeyCropDateUpdated:  {"ar": "تم تحديث تاريخ الزراعة.", "en": "Planting date updated."},
	KeyCropNotesUpdated: {"ar": "تم تحديث الملاحظات.", "en": "Notes updated."},
	KeyCropUpdateError:  {"ar": "خطأ أثناء التحديث.", "en": "Error updating crop."},

	KeyChooseCrop:       {"ar": "اختر المحصول:", "en": "Choose crop:"},
	KeyNoCropsAddFirst:  {"ar": "ليس لديك محاصيل. أضف محصولًا أولاً.", "en": "No crops found. Add a crop first."},
	KeyWhenHarvest:      {"ar": "متى تم الحصاد؟", "en": "When was the harvest?"},
	KeyAskQuantity:      {"ar": "كم الكمية (كجم)؟", "en": "Enter quantity (kg):"},
	KeyHarvestBranch:    {"ar": "هل تم تخزين الحصاد أم تسليمه؟", "en": "Was the harvest stored or delivered?"},
	KeyStoredBtn:        {"ar": "📦 مخزّن", "en": "📦 Stored"},
	KeyDeliveredBtn:     {"ar": "🚚 تم التسليم", "en": "🚚 Delivered"},
	KeyAskCollector:     {"ar": "اسم الجامع (اختياري):", "en": "Collector name (optional):"},
	KeyAskMarket:        {"ar": "اسم السوق (اختياري):", "en": "Market name (optional):"},
	KeyHarvestStored:    {"ar": "تم تسجيل الحصاد. 📦", "en": "Harvest recorded. 📦"},
	KeyHarvestDelivered: {"ar": "تم تسجيل الحصاد والتسليم، وأضيفت دفعة معلقة. 🚚", "en": "Harvest and delivery recorded, pending payment created. 🚚"},
	KeyHarvestError:     {"ar": "خطأ أثناء تسجيل الحصاد.", "en": "Error recording harvest."},

	KeyAskProduct:       {"ar": "ما اسم المنتج المستخدم؟", "en": "What product was used?"},
	KeyWhenTreatment:    {"ar": "متى تم العلاج؟", "en": "When was it applied?"},
	KeyAskCost:          {"ar": "التكلفة (اختياري):", "en": "Cost (optional):"},
	KeyAskNextDue:       {"ar": "موعد العلاج القادم (اختياري):", "en": "Next due date (optional):"},
	KeyTreatmentSaved:   {"ar": "تم تسجيل العلاج. ✅", "en": "Treatment recorded. ✅"},
	KeyTreatmentError:   {"ar": "خطأ أثناء تسجيل العلاج.", "en": "Error recording treatment."},
	KeyUpcomingTreatments: {"ar": "🗓️ علاجات قادمة:", "en": "🗓️ Upcoming treatments:"},

	KeyChooseCategory:  {"ar": "اختر فئة المصروف:", "en": "Choose expense category:"},
	KeyCatSeeds:        {"ar": "🌱 بذور", "en": "🌱 Seeds"},
	KeyCatFertilizer:   {"ar": "🧪 سماد", "en": "🧪 Fertilizer"},
	KeyCatTransport:    {"ar": "🚚 نقل", "en": "🚚 Transport"},
	KeyCatOther:        {"ar": "📦 أخرى", "en": "📦 Other"},
	KeyLinkCrop:        {"ar": "اربط المصروف بمحصول؟", "en": "Link the expense to a crop?"},
	KeyNoCropLink:      {"ar": "بدون محصول", "en": "No crop"},
	KeyAskAmount:       {"ar": "كم المبلغ؟", "en": "Enter the amount:"},
	KeyWhenExpense:     {"ar": "متى تم الدفع؟", "en": "When was it paid?"},
	KeyExpenseSaved:    {"ar": "تم تسجيل المصروف. ✅", "en": "Expense recorded. ✅"},
	KeyExpenseError:    {"ar": "خطأ أثناء تسجيل المصروف.", "en": "Error recording expense."},

	KeyPendingHeader:    {"ar": "💵 المدفوعات المعلقة:", "en": "💵 Pending payments:"},
	KeyNoPending:        {"ar": "لا توجد مدفوعات معلقة.", "en": "No pending payments."},
	KeyMarkPaidBtn:      {"ar": "✅ تم الدفع", "en": "✅ Mark Paid"},
	KeyCreatePendingBtn: {"ar": "➕ أنشئ دفعة معلقة", "en": "➕ Create Pending"},
	KeyPaidDirectBtn:    {"ar": "💵 دُفع مباشرة", "en": "💵 Paid Directly"},
	KeyUnlinkedHeader:   {"ar": "تسليمات بلا دفعات مسجلة:", "en": "Deliveries with no payment on record:"},
	KeyAskPaidAmount:    {"ar": "كم المبلغ المدفوع؟", "en": "How much was paid?"},
	KeyPaymentSaved:     {"ar": "تم تسجيل الدفعة. ✅", "en": "Payment recorded. ✅"},
	KeyPaymentError:     {"ar": "خطأ أثناء تسجيل الدفعة.", "en": "Error recording payment."},
	KeyPendingCreated:   {"ar": "أُنشئت دفعة معلقة.", "en": "Pending payment created."},

	KeyPricesHeader:  {"ar": "📈 الأسعار بالسوق:", "en": "📈 Market prices:"},
	KeyNoPrices:      {"ar": "لا توجد أسعار بعد.", "en": "No prices yet."},
	KeySummaryHeader: {"ar": "📊 ملخص الأسبوع:", "en": "📊 Weekly summary:"},
	KeyTotalHarvest:  {"ar": "إجمالي الحصاد", "en": "Total harvest"},
	KeyTotalExpenses: {"ar": "إجمالي المصاريف", "en": "Total expenses"},
	KeyTotalPending:  {"ar": "إجمالي المعلق", "en": "Total pending"},

	KeyHelp: {
		"ar": "استخدم الأزرار بالأسفل لتسجيل المحاصيل والحصاد والمصاريف والعلاجات ومتابعة المدفوعات والأسعار. أرسل /cancel لإلغاء أي عملية جارية.",
		"en": "Use the buttons below to record crops, harvests, expenses and treatments, and to follow payments and prices. Send /cancel to abort any flow in progress.",
	},
	KeyAccount: {"ar": "🇱🇧 حسابك:", "en": "🇱🇧 Your account:"},

	KeyAskAdvisor:   {"ar": "اكتب سؤالك بعد الأمر، مثال: /ask متى أسمد الطماطم؟", "en": "Write your question after the command, e.g. /ask when should I fertilize tomatoes?"},
	KeyAdvisorError: {"ar": "المستشار غير متاح حاليًا.", "en": "The advisor is not available right now."},
}

// T returns the catalog text for a key in the given language, falling
// back to Arabic and then to the key itself.
func T(key Key, lang string) string {
	texts, ok := catalog[key]
	if !ok {
		return string(key)
	}
	if s, ok := texts[lang]; ok {
		return s
	}
	return texts[entity.LangArabic]
}

// MainMenuRows lays out the persistent reply keyboard.
func MainMenuRows(lang string) [][]string {
	return [][]string{
		{T(KeyBtnAccount, lang), T(KeyBtnCrops, lang)},
		{T(KeyBtnHarvest, lang), T(KeyBtnPayments, lang)},
		{T(KeyBtnTreatments, lang), T(KeyBtnExpenses, lang)},
		{T(KeyBtnPrices, lang), T(KeyBtnSummary, lang)},
		{T(KeyBtnHelp, lang)},
	}
}

// CropSuggestions are the quick-pick crop names offered while adding a crop.
func CropSuggestions(lang string) map[string]string {
	if lang == entity.LangArabic {
		return map[string]string{"Apple": "تفاح", "Tomato": "طماطم", "Potato": "بطاطس"}
	}
	return map[string]string{"Apple": "Apple", "Tomato": "Tomato", "Potato": "Potato"}
}

// VillageSuggestions are the quick-pick villages offered at registration.
func VillageSuggestions(lang string) []string {
	if lang == entity.LangArabic {
		return []string{"بعلبك", "زحلة", "الهرمل", "رياق", "شتورة"}
	}
	return []string{"Baalbek", "Zahle", "Hermel", "Rayak", "Chtaura"}
}
